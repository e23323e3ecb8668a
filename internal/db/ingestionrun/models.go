package ingestionrun

import (
	"time"
)

type IngestionRun struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	StartedAt      time.Time `json:"started_at" gorm:"column:started_at"`
	FinishedAt     time.Time `json:"finished_at" gorm:"column:finished_at"`
	LocationCount  int       `json:"location_count" gorm:"column:location_count"`
	SucceededCount int       `json:"succeeded_count" gorm:"column:succeeded_count"`
	FailedCount    int       `json:"failed_count" gorm:"column:failed_count"`
	DryRun         bool      `json:"dry_run" gorm:"column:dry_run"`
	CreatedAt      time.Time `json:"created_at" gorm:"index:idx_ingestion_runs_created_at"`
}

func (IngestionRun) TableName() string {
	return "ingestion_runs"
}
