package query

import (
	"net/url"
	"strconv"

	"ScoringDesk/internal/model"
)

// Field is one present criterion, already stringified.
type Field struct {
	Name  string
	Value string
}

// Fields lists the present criteria in declaration order. Absent fields are skipped.
func Fields(c model.SearchCriteria) []Field {
	var out []Field
	addString := func(name string, o model.Optional[string]) {
		if v, ok := o.Get(); ok {
			out = append(out, Field{Name: name, Value: v})
		}
	}
	addNumber := func(name string, o model.Optional[float64]) {
		if v, ok := o.Get(); ok {
			out = append(out, Field{Name: name, Value: strconv.FormatFloat(v, 'f', -1, 64)})
		}
	}
	addString(model.FieldFirstName, c.FirstName)
	addString(model.FieldLastName, c.LastName)
	addString(model.FieldMiddleName, c.MiddleName)
	addString(model.FieldBirthDate, c.BirthDate)
	addNumber(model.FieldIncomeFrom, c.IncomeFrom)
	addNumber(model.FieldIncomeTo, c.IncomeTo)
	return out
}

// Build encodes the present criteria as a URL query string.
// ok is false when no field is present; callers should then skip the request.
func Build(c model.SearchCriteria) (q string, ok bool) {
	fields := Fields(c)
	if len(fields) == 0 {
		return "", false
	}
	values := make(url.Values, len(fields))
	for _, f := range fields {
		values.Set(f.Name, f.Value)
	}
	return values.Encode(), true
}
