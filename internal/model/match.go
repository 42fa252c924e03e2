package model

import (
	"strings"
	"time"
)

// Matches applies the backend's search semantics: case-insensitive substring on name
// parts, exact birth date, inclusive income bounds. A client without income never
// matches an income bound.
func (c SearchCriteria) Matches(cl ClientRecord) bool {
	if !containsFold(cl.FirstName, c.FirstName) ||
		!containsFold(cl.LastName, c.LastName) ||
		!containsFold(cl.MiddleName, c.MiddleName) {
		return false
	}
	if v, ok := c.BirthDate.Get(); ok {
		d, err := time.Parse(BirthDateLayout, v)
		if err == nil && !d.Equal(cl.BirthDate) {
			return false
		}
	}
	from, hasFrom := c.IncomeFrom.Get()
	to, hasTo := c.IncomeTo.Get()
	if hasFrom || hasTo {
		if cl.Income == nil {
			return false
		}
		if hasFrom && *cl.Income < from {
			return false
		}
		if hasTo && *cl.Income > to {
			return false
		}
	}
	return true
}

func containsFold(s string, o Optional[string]) bool {
	v, ok := o.Get()
	if !ok {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(v))
}
