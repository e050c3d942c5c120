package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quantfolio/frontier/internal/database"
)

// DBMaintenanceJob checkpoints the WAL and verifies database integrity.
type DBMaintenanceJob struct {
	db  *database.DB
	log zerolog.Logger
}

// NewDBMaintenanceJob creates a maintenance job for the given database.
func NewDBMaintenanceJob(db *database.DB, log zerolog.Logger) *DBMaintenanceJob {
	return &DBMaintenanceJob{
		db:  db,
		log: log.With().Str("job", "db_maintenance").Logger(),
	}
}

// Name implements Job.
func (j *DBMaintenanceJob) Name() string { return "db_maintenance" }

// Run implements Job.
func (j *DBMaintenanceJob) Run() error {
	if err := j.db.WALCheckpoint("TRUNCATE"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := j.db.HealthCheck(ctx); err != nil {
		return err
	}

	j.log.Debug().Str("database", j.db.Name()).Msg("Database maintenance completed")
	return nil
}
