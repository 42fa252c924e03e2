package devserver

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"ScoringDesk/internal/model"
)

// Fixtures is the data served by the dev server.
type Fixtures struct {
	Clients  []model.ClientRecord
	Scorings map[int64]model.ScoringRecord
}

type clientJSON struct {
	ID         int64    `json:"id"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	MiddleName string   `json:"middle_name,omitempty"`
	BirthDate  string   `json:"birth_date"`
	Income     *float64 `json:"income,omitempty"`
}

type scoringJSON struct {
	ID              int64    `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	MiddleName      string   `json:"middle_name,omitempty"`
	BirthDate       string   `json:"birth_date"`
	Income          *float64 `json:"income,omitempty"`
	PredictIncome   float64  `json:"predict_income"`
	CreditLimit     float64  `json:"credit_limit"`
	MaxCreditLimit  *float64 `json:"max_credit_limit,omitempty"`
	Recommendations []string `json:"recommendations"`
	PositiveFactors []string `json:"positive_factors"`
	NegativeFactors []string `json:"negative_factors"`
}

type fixtureFile struct {
	Clients  []clientJSON  `json:"clients"`
	Scorings []scoringJSON `json:"scorings"`
}

// LoadFixtures reads fixtures from a JSON file of the form
// {"clients": [...], "scorings": [...]} using the backend's field names.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var f fixtureFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	fx := &Fixtures{Scorings: make(map[int64]model.ScoringRecord, len(f.Scorings))}
	for _, c := range f.Clients {
		bd, err := time.Parse(model.BirthDateLayout, c.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("client %d: birth_date %q: %w", c.ID, c.BirthDate, err)
		}
		fx.Clients = append(fx.Clients, model.ClientRecord{
			ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, MiddleName: c.MiddleName,
			BirthDate: bd, Income: c.Income,
		})
	}
	for _, s := range f.Scorings {
		fx.Scorings[s.ID] = model.ScoringRecord{
			ID: s.ID, Income: s.Income, PredictIncome: s.PredictIncome,
			CreditLimit: s.CreditLimit, MaxCreditLimit: s.MaxCreditLimit,
			PositiveFactors: s.PositiveFactors, NegativeFactors: s.NegativeFactors,
			Recommendations: s.Recommendations,
		}
	}
	return fx, nil
}

// DefaultFixtures returns a small built-in data set.
func DefaultFixtures() *Fixtures {
	f := func(v float64) *float64 { return &v }
	date := func(s string) time.Time {
		t, _ := time.Parse(model.BirthDateLayout, s)
		return t
	}
	return &Fixtures{
		Clients: []model.ClientRecord{
			{ID: 1, FirstName: "Ivan", LastName: "Ivanov", MiddleName: "Petrovich", BirthDate: date("15-03-1985"), Income: f(85000)},
			{ID: 2, FirstName: "Anna", LastName: "Petrova", BirthDate: date("02-11-1992"), Income: f(50000)},
			{ID: 3, FirstName: "Oleg", LastName: "Orlov", MiddleName: "Sergeevich", BirthDate: date("06-01-2005")},
		},
		Scorings: map[int64]model.ScoringRecord{
			1: {
				ID: 1, Income: f(85000), PredictIncome: 92000, CreditLimit: 250000, MaxCreditLimit: f(400000),
				PositiveFactors: []string{"stable employment", "no overdue payments"},
				NegativeFactors: []string{"high card utilisation"},
				Recommendations: []string{"offer premium card"},
			},
			2: {
				ID: 2, Income: f(50000), PredictIncome: 60000, CreditLimit: 40000,
				PositiveFactors: []string{"x"}, NegativeFactors: []string{},
				Recommendations: []string{},
			},
			3: {
				ID: 3, PredictIncome: 30000, CreditLimit: 15000, MaxCreditLimit: f(50000),
				PositiveFactors: []string{}, NegativeFactors: []string{"short credit history"},
				Recommendations: []string{"start with a secured card"},
			},
		},
	}
}

func (f *Fixtures) client(id int64) (model.ClientRecord, bool) {
	for _, c := range f.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return model.ClientRecord{}, false
}

func toClientJSON(c model.ClientRecord) clientJSON {
	return clientJSON{
		ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, MiddleName: c.MiddleName,
		BirthDate: c.BirthDate.Format(model.BirthDateLayout), Income: c.Income,
	}
}

func toScoringJSON(c model.ClientRecord, s model.ScoringRecord) scoringJSON {
	return scoringJSON{
		ID: s.ID, FirstName: c.FirstName, LastName: c.LastName, MiddleName: c.MiddleName,
		BirthDate: c.BirthDate.Format(model.BirthDateLayout), Income: s.Income,
		PredictIncome: s.PredictIncome, CreditLimit: s.CreditLimit, MaxCreditLimit: s.MaxCreditLimit,
		Recommendations: orEmpty(s.Recommendations),
		PositiveFactors: orEmpty(s.PositiveFactors),
		NegativeFactors: orEmpty(s.NegativeFactors),
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
