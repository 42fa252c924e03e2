package model

// Optional marks a value as explicitly present or absent.
// It is comparable whenever T is.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present value.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

// None returns an absent value.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool { return o.ok }

// SearchCriteria is the closed set of client search filters. Any field may be absent.
type SearchCriteria struct {
	FirstName  Optional[string]
	LastName   Optional[string]
	MiddleName Optional[string]
	BirthDate  Optional[string] // DD-MM-YYYY
	IncomeFrom Optional[float64]
	IncomeTo   Optional[float64]
}

// Query field names, as understood by the backend.
const (
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldMiddleName = "middle_name"
	FieldBirthDate  = "birth_date"
	FieldIncomeFrom = "income_from"
	FieldIncomeTo   = "income_to"
)

// Empty reports whether no field is present.
func (c SearchCriteria) Empty() bool {
	return !c.FirstName.IsSet() && !c.LastName.IsSet() && !c.MiddleName.IsSet() &&
		!c.BirthDate.IsSet() && !c.IncomeFrom.IsSet() && !c.IncomeTo.IsSet()
}
