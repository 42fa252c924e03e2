package gateway

import (
	"context"

	"ScoringDesk/internal/model"
)

// Gateway issues typed read/search requests against a resolved base address.
// Implementations never retry.
type Gateway interface {
	ListClients(ctx context.Context, base string) ([]model.ClientRecord, error)
	GetClient(ctx context.Context, base string, id int64) (model.ClientRecord, error)
	SearchClients(ctx context.Context, base string, c model.SearchCriteria) ([]model.ClientRecord, error)
	GetScoring(ctx context.Context, base string, id int64) (model.ScoringRecord, error)
	Name() string
}
