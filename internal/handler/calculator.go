package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/homebond/bond-engine/internal/domain"
	"github.com/homebond/bond-engine/internal/service"
	customError "github.com/homebond/bond-engine/pkg/errors"
	"github.com/homebond/bond-engine/pkg/response"
)

type CalculatorHandler struct {
	service   *service.CalculatorService
	validator *validator.Validate
}

func NewCalculatorHandler(service *service.CalculatorService) *CalculatorHandler {
	v := validator.New()
	// Expose decimal fields to the numeric validation tags (gt, gte, lte).
	v.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})

	return &CalculatorHandler{
		service:   service,
		validator: v,
	}
}

func decimalAsFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		value, _ := d.Float64()
		return value
	}
	return nil
}

// calculationResponse pairs the raw result with its rendered display rows.
type calculationResponse struct {
	Kind        domain.CalculationKind `json:"kind"`
	Result      domain.Result          `json:"result"`
	DisplayRows []domain.DisplayRow    `json:"display_results"`
}

func newCalculationResponse(result domain.Result) calculationResponse {
	return calculationResponse{
		Kind:        result.Kind(),
		Result:      result,
		DisplayRows: result.DisplayRows(),
	}
}

func (h *CalculatorHandler) CalculateBond(w http.ResponseWriter, r *http.Request) {
	var request domain.LoanRequest
	if !h.decode(w, r, &request) {
		return
	}

	result, err := h.service.CalculateBond(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, newCalculationResponse(result))
}

func (h *CalculatorHandler) CalculateAmortisation(w http.ResponseWriter, r *http.Request) {
	var request domain.LoanRequest
	if !h.decode(w, r, &request) {
		return
	}

	result, err := h.service.CalculateAmortisation(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, newCalculationResponse(result))
}

func (h *CalculatorHandler) CalculateAdditionalPayment(w http.ResponseWriter, r *http.Request) {
	var request domain.AdditionalPaymentRequest
	if !h.decode(w, r, &request) {
		return
	}

	result, err := h.service.CalculateAdditionalPayment(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, newCalculationResponse(result))
}

func (h *CalculatorHandler) CalculateAffordability(w http.ResponseWriter, r *http.Request) {
	var request domain.AffordabilityRequest
	if !h.decode(w, r, &request) {
		return
	}

	result, err := h.service.CalculateAffordability(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, newCalculationResponse(result))
}

func (h *CalculatorHandler) CalculateDepositSavings(w http.ResponseWriter, r *http.Request) {
	var request domain.DepositSavingsRequest
	if !h.decode(w, r, &request) {
		return
	}

	result, err := h.service.CalculateDepositSavings(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, newCalculationResponse(result))
}

func (h *CalculatorHandler) CalculateTransferCosts(w http.ResponseWriter, r *http.Request) {
	var request domain.TransferCostRequest
	if !h.decode(w, r, &request) {
		return
	}

	result, err := h.service.CalculateTransferCosts(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, newCalculationResponse(result))
}

func (h *CalculatorHandler) CalculateComparison(w http.ResponseWriter, r *http.Request) {
	var request domain.ComparisonRequest
	if !h.decode(w, r, &request) {
		return
	}

	result, err := h.service.CalculateComparison(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, newCalculationResponse(result))
}

func (h *CalculatorHandler) GetPrimeRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.service.CurrentPrimeRate(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, rate)
}

func (h *CalculatorHandler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid calculation ID", err)
		return
	}

	record, err := h.service.GetCalculation(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, record)
}

func (h *CalculatorHandler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(w, "Invalid limit parameter", err)
			return
		}
		limit = parsed
	}

	records, err := h.service.ListCalculations(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, records)
}

// decode unmarshals and validates the request body, writing the 400 itself
// when the body is unusable.
func (h *CalculatorHandler) decode(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		response.ErrorWithCode(w, http.StatusBadRequest, customError.ErrCodeInvalidInput, "Invalid request body", err)
		return false
	}

	if err := h.validator.Struct(request); err != nil {
		response.ErrorWithCode(w, http.StatusBadRequest, customError.ErrCodeInvalidInput, "Request validation failed", err)
		return false
	}

	return true
}

func writeError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		switch businessErr.Code {
		case customError.ErrCodeInvalidInput:
			response.ErrorWithCode(w, http.StatusBadRequest, businessErr.Code, businessErr.Message, businessErr.Err)
		case customError.ErrCodeCalculationNotFound:
			response.ErrorWithCode(w, http.StatusNotFound, businessErr.Code, businessErr.Message, businessErr.Err)
		default:
			response.ErrorWithCode(w, http.StatusInternalServerError, businessErr.Code, businessErr.Message, businessErr.Err)
		}
		return
	}

	response.InternalServerError(w, "Calculation failed", err)
}
