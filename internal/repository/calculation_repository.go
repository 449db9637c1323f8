package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/homebond/bond-engine/internal/domain"
)

const defaultListLimit = 50

type calculationRepository struct {
	db *sqlx.DB
}

func NewCalculationRepository(db *sqlx.DB) CalculationRepository {
	return &calculationRepository{db: db}
}

func (r *calculationRepository) Save(ctx context.Context, record *domain.CalculationRecord) error {
	query := `
		INSERT INTO calculations (id, user_id, kind, input_data, result_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.Kind,
		record.InputData,
		record.ResultData,
		record.CreatedAt,
	)

	return err
}

func (r *calculationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalculationRecord, error) {
	query := `
		SELECT id, user_id, kind, input_data, result_data, created_at
		FROM calculations
		WHERE id = $1
	`

	var record domain.CalculationRecord
	err := r.db.GetContext(ctx, &record, query, id)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *calculationRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT id, user_id, kind, input_data, result_data, created_at
		FROM calculations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var records []*domain.CalculationRecord
	err := r.db.SelectContext(ctx, &records, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return records, nil
}
