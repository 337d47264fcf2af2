package cron

import (
	"context"
	"fmt"

	"github.com/farmtrack/farmtrack-backend/internal/crops"
	"github.com/farmtrack/farmtrack-backend/pkg/enums"
	"github.com/farmtrack/farmtrack-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// txRunner is the transaction surface the job needs from the db client.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// availabilityReader lists crops with their committed sales totals.
type availabilityReader interface {
	ListAvailabilityRows(ctx context.Context) ([]crops.AvailabilityRow, error)
}

// AvailabilityJobParams configure the nightly status reconciliation sweep.
type AvailabilityJobParams struct {
	Logger   *logger.Logger
	DB       txRunner
	Reader   availabilityReader
	CropRepo *crops.Repository
}

// availabilityJob re-derives crop availability from sales totals. Crop edits
// that change estimated_yield bypass the sale-path recompute, so statuses can
// drift until this sweep runs.
type availabilityJob struct {
	logg     *logger.Logger
	db       txRunner
	reader   availabilityReader
	cropRepo *crops.Repository
}

// NewAvailabilityJob builds the crop availability reconciliation job.
func NewAvailabilityJob(params AvailabilityJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Reader == nil {
		return nil, fmt.Errorf("availability reader required")
	}
	if params.CropRepo == nil {
		return nil, fmt.Errorf("crop repository required")
	}
	return &availabilityJob{
		logg:     params.Logger,
		db:       params.DB,
		reader:   params.Reader,
		cropRepo: params.CropRepo,
	}, nil
}

func (j *availabilityJob) Name() string {
	return "crop_availability_reconciliation"
}

func (j *availabilityJob) Run(ctx context.Context) error {
	rows, err := j.reader.ListAvailabilityRows(ctx)
	if err != nil {
		return fmt.Errorf("list availability rows: %w", err)
	}

	var drifted []uuid.UUID
	for _, row := range rows {
		if derivedStatus(row) != row.Status {
			drifted = append(drifted, row.ID)
		}
	}
	if len(drifted) == 0 {
		j.logg.Info(ctx, "crop statuses consistent; nothing to reconcile")
		return nil
	}

	fixed := 0
	for _, cropID := range drifted {
		if err := j.reconcileCrop(ctx, cropID); err != nil {
			j.logg.Error(j.logg.WithField(ctx, "crop_id", cropID.String()), "reconcile crop failed", err)
			continue
		}
		fixed++
	}

	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"drifted": len(drifted),
		"fixed":   fixed,
	}), "crop availability reconciled")

	if fixed < len(drifted) {
		return fmt.Errorf("reconciled %d of %d drifted crops", fixed, len(drifted))
	}
	return nil
}

// reconcileCrop re-checks one crop under its row lock. The unlocked sweep
// read may be stale by the time we get here.
func (j *availabilityJob) reconcileCrop(ctx context.Context, cropID uuid.UUID) error {
	return j.db.WithTx(ctx, func(tx *gorm.DB) error {
		txCrops := j.cropRepo.WithTx(tx)
		crop, err := txCrops.FindByIDForUpdate(ctx, cropID)
		if err != nil {
			return fmt.Errorf("lock crop: %w", err)
		}

		var total float64
		err = tx.WithContext(ctx).
			Table("sales").
			Where("crop_id = ?", cropID).
			Select("COALESCE(SUM(quantity_sold), 0)").
			Scan(&total).Error
		if err != nil {
			return fmt.Errorf("sum sold quantity: %w", err)
		}

		status := enums.CropStatusAvailable
		if total >= crop.EstimatedYield {
			status = enums.CropStatusUnavailable
		}
		if status == crop.Status {
			return nil
		}
		return txCrops.UpdateStatus(ctx, cropID, status)
	})
}

func derivedStatus(row crops.AvailabilityRow) enums.CropStatus {
	if row.TotalSold >= row.EstimatedYield {
		return enums.CropStatusUnavailable
	}
	return enums.CropStatusAvailable
}
