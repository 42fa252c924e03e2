// Package render turns view states into terminal text.
package render

import (
	"errors"
	"fmt"
	"strings"

	"ScoringDesk/internal/gateway"
	"ScoringDesk/internal/model"
	"ScoringDesk/internal/view"
	"ScoringDesk/internal/viewmodel"
)

const barWidth = 30

// Clients renders the clients list/search view.
func Clients(s view.State[[]model.ClientRecord, viewmodel.ClientList]) string {
	if out, done := pending("Clients", s.Status, s.Err); done {
		return out
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Clients") + "\n\n")
	if s.ViewModel.Empty {
		b.WriteString(labelStyle.Render("no clients found") + "\n")
		return b.String()
	}
	for _, r := range s.ViewModel.Rows {
		b.WriteString(fmt.Sprintf("%s %s  %s  %s\n",
			labelStyle.Render(fmt.Sprintf("#%-4d", r.ID)),
			valueStyle.Render(r.DisplayName),
			labelStyle.Render(r.BirthDate),
			money(r.Income)))
	}
	return b.String()
}

// Client renders the single-client view.
func Client(s view.State[model.ClientRecord, viewmodel.ClientCard]) string {
	if out, done := pending("Client", s.Status, s.Err); done {
		return out
	}
	c := s.ViewModel
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.DisplayName) + "\n")
	field(&b, "ID", fmt.Sprintf("%d", c.ID))
	field(&b, "Last name", c.LastName)
	field(&b, "First name", c.FirstName)
	if c.MiddleName != "" {
		field(&b, "Middle name", c.MiddleName)
	}
	field(&b, "Birth date", c.BirthDate)
	field(&b, "Income", money(c.Income))
	return boxStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

// Metrics renders the client metrics view.
func Metrics(s view.State[model.ClientScoring, viewmodel.Metrics]) string {
	if out, done := pending("Metrics", s.Status, s.Err); done {
		return out
	}
	m := s.ViewModel
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.DisplayName) + labelStyle.Render(fmt.Sprintf("  #%d  %s", m.ClientID, m.BirthDate)) + "\n\n")

	b.WriteString(titleStyle.Render("Income") + "\n")
	top := 0.0
	for _, p := range m.IncomeSeries {
		if p.Value > top {
			top = p.Value
		}
	}
	for _, p := range m.IncomeSeries {
		b.WriteString(fmt.Sprintf("  %-10s %s %s\n", p.Label, barStyle.Render(bar(p.Value, top)), valueStyle.Render(fmt.Sprintf("%.0f", p.Value))))
	}

	b.WriteString("\n" + titleStyle.Render("Factors") + "\n")
	for _, f := range m.Bullets.Positive {
		b.WriteString("  " + plusStyle.Render("+ "+f) + "\n")
	}
	for _, f := range m.Bullets.Negative {
		b.WriteString("  " + minusStyle.Render("- "+f) + "\n")
	}
	if len(m.Bullets.Positive)+len(m.Bullets.Negative) == 0 {
		b.WriteString(labelStyle.Render("  none") + "\n")
	}

	if len(m.Recommendations) > 0 {
		b.WriteString("\n" + titleStyle.Render("Recommendations") + "\n")
		for _, r := range m.Recommendations {
			b.WriteString("  • " + valueStyle.Render(r) + "\n")
		}
	}

	sl := m.Slider
	b.WriteString("\n" + titleStyle.Render("Credit limit") + "\n")
	b.WriteString(fmt.Sprintf("  %s [%s] %s\n", labelStyle.Render(fmt.Sprintf("%.0f", sl.Min)),
		barStyle.Render(slider(sl.Position)), labelStyle.Render(fmt.Sprintf("%.0f", sl.Max))))
	b.WriteString("  " + valueStyle.Render(fmt.Sprintf("%.0f", sl.Value)) + "\n")
	return b.String()
}

// pending renders the non-success states. done is false only for success.
func pending(title string, st view.Status, err error) (string, bool) {
	switch st {
	case view.StatusIdle:
		return labelStyle.Render(title+": nothing selected") + "\n", true
	case view.StatusLoading:
		return loadingStyle.Render(title+": loading…") + "\n", true
	case view.StatusError:
		return errorStyle.Render(title+": "+Describe(err)) + "\n", true
	}
	return "", false
}

// Describe turns a view error into a message for the operator.
func Describe(err error) string {
	switch {
	case err == nil:
		return "unknown error"
	case errors.Is(err, gateway.ErrNotFound):
		return "client not found"
	case errors.Is(err, gateway.ErrMalformedResponse):
		return "backend returned an unexpected response"
	case errors.Is(err, gateway.ErrNetworkFailure):
		return "backend unavailable: " + err.Error()
	default:
		return err.Error()
	}
}

func field(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value) + "\n")
}

func money(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.0f", *v)
}

func bar(v, top float64) string {
	n := 0
	if top > 0 && v > 0 {
		n = int(v / top * barWidth)
	}
	return strings.Repeat("█", n) + strings.Repeat(" ", barWidth-n)
}

func slider(pos float64) string {
	n := int(pos * barWidth)
	if n >= barWidth {
		n = barWidth - 1
	}
	return strings.Repeat("─", n) + "●" + strings.Repeat("─", barWidth-n-1)
}
