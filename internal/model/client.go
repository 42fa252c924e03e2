package model

import "time"

// BirthDateLayout is the date format the backend uses on the wire.
const BirthDateLayout = "02-01-2006"

// ClientRecord is a client as returned by the backend. Treated as immutable once received.
type ClientRecord struct {
	ID         int64
	FirstName  string
	LastName   string
	MiddleName string // empty when absent
	BirthDate  time.Time
	Income     *float64
}

// FullName returns "last first [middle]".
func (c ClientRecord) FullName() string {
	if c.MiddleName != "" {
		return c.LastName + " " + c.FirstName + " " + c.MiddleName
	}
	return c.LastName + " " + c.FirstName
}

// ScoringRecord holds the scoring figures for one client. Figures are passed through unchanged.
type ScoringRecord struct {
	ID              int64
	Income          *float64
	PredictIncome   float64
	CreditLimit     float64
	MaxCreditLimit  *float64
	PositiveFactors []string
	NegativeFactors []string
	Recommendations []string
}

// ClientScoring pairs a client with its scoring, the input of the metrics view.
type ClientScoring struct {
	Client  ClientRecord
	Scoring ScoringRecord
}
