package gateway

import (
	"fmt"
	"time"

	"ScoringDesk/internal/model"
)

// wireClient is the JSON shape of a client. Pointer fields are required.
type wireClient struct {
	ID         *int64   `json:"id"`
	FirstName  *string  `json:"first_name"`
	LastName   *string  `json:"last_name"`
	MiddleName string   `json:"middle_name"`
	BirthDate  *string  `json:"birth_date"`
	Income     *float64 `json:"income"`
}

// wireScoring is the JSON shape of a scoring result. Name fields sent by the backend are ignored.
type wireScoring struct {
	ID              *int64   `json:"id"`
	Income          *float64 `json:"income"`
	PredictIncome   *float64 `json:"predict_income"`
	CreditLimit     *float64 `json:"credit_limit"`
	MaxCreditLimit  *float64 `json:"max_credit_limit"`
	PositiveFactors []string `json:"positive_factors"`
	NegativeFactors []string `json:"negative_factors"`
	Recommendations []string `json:"recommendations"`
}

func (w wireClient) record() (model.ClientRecord, error) {
	switch {
	case w.ID == nil:
		return model.ClientRecord{}, missing("id")
	case w.FirstName == nil:
		return model.ClientRecord{}, missing("first_name")
	case w.LastName == nil:
		return model.ClientRecord{}, missing("last_name")
	case w.BirthDate == nil:
		return model.ClientRecord{}, missing("birth_date")
	}
	bd, err := time.Parse(model.BirthDateLayout, *w.BirthDate)
	if err != nil {
		return model.ClientRecord{}, fmt.Errorf("%w: birth_date %q: %v", ErrMalformedResponse, *w.BirthDate, err)
	}
	return model.ClientRecord{
		ID:         *w.ID,
		FirstName:  *w.FirstName,
		LastName:   *w.LastName,
		MiddleName: w.MiddleName,
		BirthDate:  bd,
		Income:     w.Income,
	}, nil
}

func (w wireScoring) record() (model.ScoringRecord, error) {
	switch {
	case w.ID == nil:
		return model.ScoringRecord{}, missing("id")
	case w.PredictIncome == nil:
		return model.ScoringRecord{}, missing("predict_income")
	case w.CreditLimit == nil:
		return model.ScoringRecord{}, missing("credit_limit")
	}
	return model.ScoringRecord{
		ID:              *w.ID,
		Income:          w.Income,
		PredictIncome:   *w.PredictIncome,
		CreditLimit:     *w.CreditLimit,
		MaxCreditLimit:  w.MaxCreditLimit,
		PositiveFactors: nonNil(w.PositiveFactors),
		NegativeFactors: nonNil(w.NegativeFactors),
		Recommendations: nonNil(w.Recommendations),
	}, nil
}

// clientRecords converts a decoded client array. A nil pointer means the body was null.
func clientRecords(ws *[]wireClient) ([]model.ClientRecord, error) {
	if ws == nil {
		return nil, fmt.Errorf("%w: expected a client array, got null", ErrMalformedResponse)
	}
	out := make([]model.ClientRecord, 0, len(*ws))
	for i, w := range *ws {
		rec, err := w.record()
		if err != nil {
			return nil, fmt.Errorf("client #%d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing required field %q", ErrMalformedResponse, field)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
