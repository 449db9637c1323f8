package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/homebond/bond-engine/internal/config"
	"github.com/homebond/bond-engine/internal/domain"
	"github.com/homebond/bond-engine/internal/rates"
	"github.com/homebond/bond-engine/internal/service"
	customError "github.com/homebond/bond-engine/pkg/errors"
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

type successEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func testRouter(repo *MockCalculationRepository) *mux.Router {
	cfg := &config.Config{
		Business: config.BusinessConfig{
			DefaultAffordabilityRatio: "0.30",
			SavingsHorizonMonths:      1200,
			PersistTimeout:            "5s",
		},
	}

	source := rates.NewStaticSource(
		decimal.NewFromFloat(11.25),
		time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
	)

	var calculatorService *service.CalculatorService
	if repo != nil {
		calculatorService = service.NewCalculatorService(repo, source, cfg)
	} else {
		calculatorService = service.NewCalculatorService(nil, source, cfg)
	}

	handler := NewCalculatorHandler(calculatorService)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/calculators/bond", handler.CalculateBond).Methods("POST")
	api.HandleFunc("/rates/prime", handler.GetPrimeRate).Methods("GET")
	api.HandleFunc("/calculations/{id}", handler.GetCalculation).Methods("GET")
	api.HandleFunc("/users/{userId}/calculations", handler.ListCalculations).Methods("GET")

	return router
}

func doRequest(t *testing.T, router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestCalculateBond_ReturnsResultAndDisplayRows(t *testing.T) {
	router := testRouter(nil)

	recorder := doRequest(t, router, "POST", "/api/v1/calculators/bond",
		`{"principal": 1000000, "annual_rate_percent": 11.25, "term_years": 20}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope successEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)

	var payload struct {
		Kind   string `json:"kind"`
		Result struct {
			MonthlyPayment decimal.Decimal `json:"monthly_payment"`
		} `json:"result"`
		DisplayResults []domain.DisplayRow `json:"display_results"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &payload))

	assert.Equal(t, string(domain.KindBond), payload.Kind)
	assert.True(t, payload.Result.MonthlyPayment.Sub(decimal.NewFromFloat(10492.56)).Abs().LessThanOrEqual(decimal.NewFromFloat(0.02)),
		"monthly payment %s", payload.Result.MonthlyPayment)
	assert.NotEmpty(t, payload.DisplayResults)
}

func TestCalculateBond_ValidationFailureIsInvalidInput(t *testing.T) {
	router := testRouter(nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing principal", `{"annual_rate_percent": 11.25, "term_years": 20}`},
		{"negative principal", `{"principal": -5, "term_years": 20}`},
		{"missing term", `{"principal": 1000000}`},
		{"unsupported frequency", `{"principal": 1000000, "term_years": 20, "payment_frequency": "daily"}`},
		{"malformed body", `{"principal": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doRequest(t, router, "POST", "/api/v1/calculators/bond", tt.body)

			require.Equal(t, http.StatusBadRequest, recorder.Code)

			var envelope errorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.False(t, envelope.Success)
			assert.Equal(t, customError.ErrCodeInvalidInput, envelope.Code)
		})
	}
}

func TestCalculateBond_EngineRejectionIsInvalidInput(t *testing.T) {
	router := testRouter(nil)

	// Passes the validator tags (every field individually in range) but the
	// deposit swallows the whole principal, which the engine rejects.
	recorder := doRequest(t, router, "POST", "/api/v1/calculators/bond",
		`{"principal": 1000000, "annual_rate_percent": 11.25, "term_years": 20, "deposit_amount": 2000000}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, customError.ErrCodeInvalidInput, envelope.Code)
}

func TestGetCalculation_MalformedID(t *testing.T) {
	router := testRouter(nil)

	recorder := doRequest(t, router, "GET", "/api/v1/calculations/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetCalculation_UnknownIDIsNotFound(t *testing.T) {
	mockRepo := &MockCalculationRepository{}
	router := testRouter(mockRepo)

	id := uuid.New()
	mockRepo.On("GetByID", mock.Anything, id).Return(nil, sql.ErrNoRows)

	recorder := doRequest(t, router, "GET", "/api/v1/calculations/"+id.String(), "")

	require.Equal(t, http.StatusNotFound, recorder.Code)

	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, customError.ErrCodeCalculationNotFound, envelope.Code)
	mockRepo.AssertExpectations(t)
}

func TestListCalculations_InvalidLimit(t *testing.T) {
	router := testRouter(&MockCalculationRepository{})

	recorder := doRequest(t, router, "GET", "/api/v1/users/user-42/calculations?limit=abc", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetPrimeRate_ReturnsConfiguredRate(t *testing.T) {
	router := testRouter(nil)

	recorder := doRequest(t, router, "GET", "/api/v1/rates/prime", "")

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope successEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	var rate struct {
		Rate decimal.Decimal `json:"rate"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &rate))
	assert.True(t, rate.Rate.Equal(decimal.NewFromFloat(11.25)), "rate %s", rate.Rate)
}
