package query

import (
	"fmt"
	"net/url"
	"strconv"

	"ScoringDesk/internal/model"
)

// Parse is the inverse of Build. Keys missing from values stay absent; unknown keys are ignored.
func Parse(values url.Values) (model.SearchCriteria, error) {
	var c model.SearchCriteria
	str := func(name string) model.Optional[string] {
		if _, ok := values[name]; !ok {
			return model.None[string]()
		}
		return model.Some(values.Get(name))
	}
	num := func(name string) (model.Optional[float64], error) {
		if _, ok := values[name]; !ok {
			return model.None[float64](), nil
		}
		f, err := strconv.ParseFloat(values.Get(name), 64)
		if err != nil {
			return model.None[float64](), fmt.Errorf("parse %s: %w", name, err)
		}
		return model.Some(f), nil
	}

	c.FirstName = str(model.FieldFirstName)
	c.LastName = str(model.FieldLastName)
	c.MiddleName = str(model.FieldMiddleName)
	c.BirthDate = str(model.FieldBirthDate)
	var err error
	if c.IncomeFrom, err = num(model.FieldIncomeFrom); err != nil {
		return model.SearchCriteria{}, err
	}
	if c.IncomeTo, err = num(model.FieldIncomeTo); err != nil {
		return model.SearchCriteria{}, err
	}
	return c, nil
}

// ParseString parses an encoded query string. An empty string yields empty criteria.
func ParseString(raw string) (model.SearchCriteria, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return model.SearchCriteria{}, fmt.Errorf("parse query: %w", err)
	}
	return Parse(values)
}
