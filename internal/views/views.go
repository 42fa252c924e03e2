// Package views binds the generic view controller to the backend's three pages:
// the clients list/search, a single client, and a client's scoring metrics.
package views

import (
	"context"
	"fmt"
	"strconv"

	"ScoringDesk/internal/gateway"
	"ScoringDesk/internal/model"
	"ScoringDesk/internal/query"
	"ScoringDesk/internal/view"
	"ScoringDesk/internal/viewmodel"
)

// View names, used in logs and history records.
const (
	NameClients = "clients"
	NameClient  = "client"
	NameMetrics = "metrics"
)

// ClientsRoute is the clients page parameter. All lists every client; otherwise
// Criteria is searched, and empty criteria yield an empty list without a request.
type ClientsRoute struct {
	All      bool
	Criteria model.SearchCriteria
}

func (r ClientsRoute) String() string {
	if r.All {
		return "all"
	}
	q, _ := query.Build(r.Criteria)
	return "search?" + q
}

type (
	ClientsView = view.Controller[ClientsRoute, []model.ClientRecord, viewmodel.ClientList]
	ClientView  = view.Controller[int64, model.ClientRecord, viewmodel.ClientCard]
	MetricsView = view.Controller[int64, model.ClientScoring, viewmodel.Metrics]
)

// Transition is a committed state change reported to Deps.Observe.
type Transition struct {
	View   string
	Param  string
	Status view.Status
	Err    error
}

// Deps is what every view needs. Base is the resolved backend address.
type Deps struct {
	Gateway gateway.Gateway
	Base    string
	Observe func(Transition) // optional; called with the view's lock held
}

// NewClientsView creates the clients list/search view.
func NewClientsView(d Deps) *ClientsView {
	return view.New(view.Options[ClientsRoute, []model.ClientRecord, viewmodel.ClientList]{
		Name: NameClients,
		Fetch: func(ctx context.Context, r ClientsRoute) ([]model.ClientRecord, error) {
			if r.All {
				return d.Gateway.ListClients(ctx, d.Base)
			}
			return d.Gateway.SearchClients(ctx, d.Base, r.Criteria)
		},
		Derive:       viewmodel.DeriveClientList,
		OnTransition: observer[ClientsRoute, []model.ClientRecord, viewmodel.ClientList](d, NameClients, ClientsRoute.String),
	})
}

// NewClientView creates the single-client view.
func NewClientView(d Deps) *ClientView {
	return view.New(view.Options[int64, model.ClientRecord, viewmodel.ClientCard]{
		Name: NameClient,
		Fetch: func(ctx context.Context, id int64) (model.ClientRecord, error) {
			return d.Gateway.GetClient(ctx, d.Base, id)
		},
		Derive:       viewmodel.DeriveClientCard,
		OnTransition: observer[int64, model.ClientRecord, viewmodel.ClientCard](d, NameClient, formatID),
	})
}

// NewMetricsView creates the client metrics view.
func NewMetricsView(d Deps) *MetricsView {
	return view.New(view.Options[int64, model.ClientScoring, viewmodel.Metrics]{
		Name: NameMetrics,
		Fetch: func(ctx context.Context, id int64) (model.ClientScoring, error) {
			return LoadClientScoring(ctx, d.Gateway, d.Base, id)
		},
		Derive:       viewmodel.DeriveMetrics,
		OnTransition: observer[int64, model.ClientScoring, viewmodel.Metrics](d, NameMetrics, formatID),
	})
}

// LoadClientScoring fetches a client and then its scoring. A scoring record for
// another id is a malformed response.
func LoadClientScoring(ctx context.Context, gw gateway.Gateway, base string, id int64) (model.ClientScoring, error) {
	client, err := gw.GetClient(ctx, base, id)
	if err != nil {
		return model.ClientScoring{}, err
	}
	scoring, err := gw.GetScoring(ctx, base, id)
	if err != nil {
		return model.ClientScoring{}, err
	}
	if scoring.ID != client.ID {
		return model.ClientScoring{}, fmt.Errorf("%w: scoring id %d for client %d", gateway.ErrMalformedResponse, scoring.ID, client.ID)
	}
	return model.ClientScoring{Client: client, Scoring: scoring}, nil
}

func observer[P comparable, T any, V any](d Deps, name string, format func(P) string) func(P, view.State[T, V]) {
	if d.Observe == nil {
		return nil
	}
	return func(p P, s view.State[T, V]) {
		d.Observe(Transition{View: name, Param: format(p), Status: s.Status, Err: s.Err})
	}
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }
