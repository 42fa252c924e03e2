package gateway

import (
	"context"
	"strconv"
	"time"

	"ScoringDesk/internal/model"
	"ScoringDesk/internal/query"
)

// CallEvent describes one finished gateway call.
type CallEvent struct {
	Op       string
	Target   string // id or query, for history records
	Started  time.Time
	Duration time.Duration
	Err      error
}

// Observer receives every finished call. It must not block.
type Observer func(CallEvent)

type observed struct {
	next Gateway
	obs  Observer
}

// WithObserver wraps g so each call is reported to obs after it returns.
func WithObserver(g Gateway, obs Observer) Gateway {
	if obs == nil {
		return g
	}
	return &observed{next: g, obs: obs}
}

func (o *observed) Name() string { return o.next.Name() }

func (o *observed) report(op, target string, start time.Time, err error) {
	o.obs(CallEvent{Op: op, Target: target, Started: start, Duration: time.Since(start), Err: err})
}

func (o *observed) ListClients(ctx context.Context, base string) ([]model.ClientRecord, error) {
	start := time.Now()
	recs, err := o.next.ListClients(ctx, base)
	o.report("list", "", start, err)
	return recs, err
}

func (o *observed) GetClient(ctx context.Context, base string, id int64) (model.ClientRecord, error) {
	start := time.Now()
	rec, err := o.next.GetClient(ctx, base, id)
	o.report("get", idTarget(id), start, err)
	return rec, err
}

func (o *observed) SearchClients(ctx context.Context, base string, c model.SearchCriteria) ([]model.ClientRecord, error) {
	start := time.Now()
	recs, err := o.next.SearchClients(ctx, base, c)
	// empty criteria never reach the backend
	if !c.Empty() {
		o.report("search", criteriaTarget(c), start, err)
	}
	return recs, err
}

func (o *observed) GetScoring(ctx context.Context, base string, id int64) (model.ScoringRecord, error) {
	start := time.Now()
	rec, err := o.next.GetScoring(ctx, base, id)
	o.report("scoring", idTarget(id), start, err)
	return rec, err
}

func idTarget(id int64) string { return strconv.FormatInt(id, 10) }

func criteriaTarget(c model.SearchCriteria) string {
	q, _ := query.Build(c)
	return q
}
