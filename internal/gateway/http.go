package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"ScoringDesk/internal/model"
	"ScoringDesk/internal/query"
)

const (
	apiPrefix    = "api/"
	maxBodyBytes = 8 << 20
)

// HTTPGateway implements Gateway over the backend's JSON REST API.
type HTTPGateway struct {
	Client *http.Client
}

// NewHTTPGateway creates a gateway with the given request timeout and optional proxy support.
func NewHTTPGateway(timeout time.Duration, proxyURL string) *HTTPGateway {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPGateway{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (g *HTTPGateway) Name() string { return "http" }

func (g *HTTPGateway) ListClients(ctx context.Context, base string) ([]model.ClientRecord, error) {
	var ws *[]wireClient
	if err := g.get(ctx, base, "clients", "", &ws); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	recs, err := clientRecords(ws)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return recs, nil
}

func (g *HTTPGateway) GetClient(ctx context.Context, base string, id int64) (model.ClientRecord, error) {
	var w wireClient
	if err := g.get(ctx, base, "clients/"+strconv.FormatInt(id, 10), "", &w); err != nil {
		return model.ClientRecord{}, fmt.Errorf("get client %d: %w", id, err)
	}
	rec, err := w.record()
	if err != nil {
		return model.ClientRecord{}, fmt.Errorf("get client %d: %w", id, err)
	}
	return rec, nil
}

// SearchClients returns an empty slice without a request when no criterion is present.
func (g *HTTPGateway) SearchClients(ctx context.Context, base string, c model.SearchCriteria) ([]model.ClientRecord, error) {
	q, ok := query.Build(c)
	if !ok {
		return []model.ClientRecord{}, nil
	}
	var ws *[]wireClient
	if err := g.get(ctx, base, "clients/search", q, &ws); err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	recs, err := clientRecords(ws)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	return recs, nil
}

func (g *HTTPGateway) GetScoring(ctx context.Context, base string, id int64) (model.ScoringRecord, error) {
	var w wireScoring
	if err := g.get(ctx, base, "clients/"+strconv.FormatInt(id, 10)+"/scoring", "", &w); err != nil {
		return model.ScoringRecord{}, fmt.Errorf("get scoring %d: %w", id, err)
	}
	rec, err := w.record()
	if err != nil {
		return model.ScoringRecord{}, fmt.Errorf("get scoring %d: %w", id, err)
	}
	return rec, nil
}

// get performs one GET and decodes the body into out.
// Context cancellation is returned as the context's error, not as a network failure.
func (g *HTTPGateway) get(ctx context.Context, base, path, rawQuery string, out any) error {
	endpoint := strings.TrimRight(base, "/") + "/" + apiPrefix + path
	if rawQuery != "" {
		endpoint += "?" + rawQuery
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrNetworkFailure, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log.Printf("[INFO] GET %s (request %s)", endpoint, reqID)
	resp, err := g.Client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: read body: %v", ErrNetworkFailure, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, excerpt(body))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d, body: %s", ErrNetworkFailure, resp.StatusCode, excerpt(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrMalformedResponse, err)
	}
	return nil
}

func excerpt(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
