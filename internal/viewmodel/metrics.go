package viewmodel

import "ScoringDesk/internal/model"

// Series labels of the income chart.
const (
	LabelIncome    = "income"
	LabelPredicted = "predicted"
)

// Point is one bar of the income chart.
type Point struct {
	Label string
	Value float64
}

// Bullets groups the scoring factors for display. Order is preserved.
type Bullets struct {
	Positive []string
	Negative []string
}

// Metrics is the derived view-model of the client metrics view.
type Metrics struct {
	ClientID        int64
	DisplayName     string
	BirthDate       string
	IncomeSeries    []Point
	Bullets         Bullets
	Recommendations []string
	Slider          Slider
}

// DeriveMetrics builds the metrics view-model. Scoring figures are passed through unchanged.
func DeriveMetrics(cs model.ClientScoring) Metrics {
	s := cs.Scoring
	return Metrics{
		ClientID:        cs.Client.ID,
		DisplayName:     cs.Client.FullName(),
		BirthDate:       cs.Client.BirthDate.Format(model.BirthDateLayout),
		IncomeSeries:    incomeSeries(cs),
		Bullets:         Bullets{Positive: clone(s.PositiveFactors), Negative: clone(s.NegativeFactors)},
		Recommendations: clone(s.Recommendations),
		Slider:          NewSlider(s.CreditLimit, s.MaxCreditLimit),
	}
}

// incomeSeries yields [income, predicted]. Income comes from the scoring record, then the
// client record; when neither has it the series holds only the prediction.
func incomeSeries(cs model.ClientScoring) []Point {
	income := cs.Scoring.Income
	if income == nil {
		income = cs.Client.Income
	}
	series := make([]Point, 0, 2)
	if income != nil {
		series = append(series, Point{Label: LabelIncome, Value: *income})
	}
	return append(series, Point{Label: LabelPredicted, Value: cs.Scoring.PredictIncome})
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
