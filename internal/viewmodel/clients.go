package viewmodel

import "ScoringDesk/internal/model"

// ClientRow is one line of the clients list.
type ClientRow struct {
	ID          int64
	DisplayName string
	BirthDate   string
	Income      *float64
}

// ClientList is the derived view-model of the clients (search) view.
type ClientList struct {
	Rows  []ClientRow
	Empty bool
}

// DeriveClientList maps records to rows, keeping backend order.
func DeriveClientList(clients []model.ClientRecord) ClientList {
	rows := make([]ClientRow, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, row(c))
	}
	return ClientList{Rows: rows, Empty: len(rows) == 0}
}

// ClientCard is the derived view-model of the single-client view.
type ClientCard struct {
	ClientRow
	FirstName  string
	LastName   string
	MiddleName string
}

// DeriveClientCard builds the single-client view-model.
func DeriveClientCard(c model.ClientRecord) ClientCard {
	return ClientCard{
		ClientRow:  row(c),
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		MiddleName: c.MiddleName,
	}
}

func row(c model.ClientRecord) ClientRow {
	var income *float64
	if c.Income != nil {
		v := *c.Income
		income = &v
	}
	return ClientRow{
		ID:          c.ID,
		DisplayName: c.FullName(),
		BirthDate:   c.BirthDate.Format(model.BirthDateLayout),
		Income:      income,
	}
}
