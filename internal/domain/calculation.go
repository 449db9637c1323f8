package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CalculationRecord is the persisted envelope for a completed calculation.
// Input and result payloads are stored as opaque JSON so the storage schema
// never depends on individual calculator shapes.
type CalculationRecord struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	UserID     string          `json:"user_id" db:"user_id"`
	Kind       CalculationKind `json:"kind" db:"kind"`
	InputData  json.RawMessage `json:"input_data" db:"input_data"`
	ResultData json.RawMessage `json:"result_data" db:"result_data"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// NewCalculationRecord serializes a calculator's input and result into a
// record ready for persistence.
func NewCalculationRecord(userID string, input interface{}, result Result) (*CalculationRecord, error) {
	inputData, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	resultData, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	return &CalculationRecord{
		ID:         uuid.New(),
		UserID:     userID,
		Kind:       result.Kind(),
		InputData:  inputData,
		ResultData: resultData,
		CreatedAt:  time.Now(),
	}, nil
}
