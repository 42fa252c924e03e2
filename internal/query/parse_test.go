package query

import (
	"net/url"
	"testing"

	"ScoringDesk/internal/model"
)

func TestParse_RoundTrip(t *testing.T) {
	in := model.SearchCriteria{
		LastName:   model.Some("Orlov"),
		BirthDate:  model.Some("06-01-2005"),
		IncomeFrom: model.Some(40000.25),
	}
	q, ok := Build(in)
	if !ok {
		t.Fatal("expected a query")
	}
	values, err := url.ParseQuery(q)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Parse(values)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestParse_BadNumber(t *testing.T) {
	if _, err := Parse(url.Values{"income_to": {"lots"}}); err == nil {
		t.Error("expected error for non-numeric income")
	}
}
