package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/quantfolio/frontier/internal/modules/runs"
)

// PruneRunsJob removes optimization runs older than the retention window.
type PruneRunsJob struct {
	repo      *runs.Repository
	retention time.Duration
	log       zerolog.Logger
}

// NewPruneRunsJob creates a prune job for the given retention window.
func NewPruneRunsJob(repo *runs.Repository, retention time.Duration, log zerolog.Logger) *PruneRunsJob {
	return &PruneRunsJob{
		repo:      repo,
		retention: retention,
		log:       log.With().Str("job", "prune_runs").Logger(),
	}
}

// Name implements Job.
func (j *PruneRunsJob) Name() string { return "prune_runs" }

// Run implements Job.
func (j *PruneRunsJob) Run() error {
	deleted, err := j.repo.Prune(j.retention)
	if err != nil {
		return err
	}
	j.log.Debug().Int64("deleted", deleted).Dur("retention", j.retention).Msg("Run history pruned")
	return nil
}
