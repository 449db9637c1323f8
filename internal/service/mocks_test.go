package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/homebond/bond-engine/internal/domain"
)

type MockCalculationRepository struct {
	mock.Mock
}

func (m *MockCalculationRepository) Save(ctx context.Context, record *domain.CalculationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCalculationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CalculationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationRecord), args.Error(1)
}

func (m *MockCalculationRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*domain.CalculationRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CalculationRecord), args.Error(1)
}
