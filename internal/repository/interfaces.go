package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/homebond/bond-engine/internal/domain"
)

// CalculationRepository defines the interface for calculation record storage
type CalculationRepository interface {
	// Save persists a completed calculation record
	Save(ctx context.Context, record *domain.CalculationRecord) error

	// GetByID retrieves a calculation record by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CalculationRecord, error)

	// ListByUserID retrieves a user's saved calculations, newest first
	ListByUserID(ctx context.Context, userID string, limit int) ([]*domain.CalculationRecord, error)
}
