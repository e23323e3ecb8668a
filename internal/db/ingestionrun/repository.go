package ingestionrun

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	LogRun(startedAt, finishedAt time.Time, locationCount, succeededCount, failedCount int, dryRun bool) error
	GetLastRun() (*IngestionRun, error)
}

type IngestionRunSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &IngestionRunSQLRepository{db: db}
}

func (r *IngestionRunSQLRepository) LogRun(startedAt, finishedAt time.Time, locationCount, succeededCount, failedCount int, dryRun bool) error {
	run := IngestionRun{
		StartedAt:      startedAt,
		FinishedAt:     finishedAt,
		LocationCount:  locationCount,
		SucceededCount: succeededCount,
		FailedCount:    failedCount,
		DryRun:         dryRun,
		CreatedAt:      time.Now(),
	}

	return r.db.Create(&run).Error
}

func (r *IngestionRunSQLRepository) GetLastRun() (*IngestionRun, error) {
	var run IngestionRun
	err := r.db.Order("created_at DESC").First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}
