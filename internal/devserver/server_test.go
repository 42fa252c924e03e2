package devserver

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"ScoringDesk/internal/gateway"
	"ScoringDesk/internal/model"
	"ScoringDesk/internal/views"
)

const base = "http://devserver"

// startServer serves fx on an in-memory listener and returns a gateway wired to it.
func startServer(t *testing.T, fx *Fixtures) *gateway.HTTPGateway {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := New(fx)
	go srv.Serve(ln)

	gw := &gateway.HTTPGateway{Client: &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return ln.Dial()
			},
		},
	}}
	t.Cleanup(func() {
		gw.Client.CloseIdleConnections()
		srv.Shutdown()
	})
	return gw
}

func TestListAndGet(t *testing.T) {
	gw := startServer(t, nil)
	ctx := context.Background()

	clients, err := gw.ListClients(ctx, base)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, "Ivanov Ivan Petrovich", clients[0].FullName())

	c, err := gw.GetClient(ctx, base, 2)
	require.NoError(t, err)
	assert.Equal(t, "02-11-1992", c.BirthDate.Format(model.BirthDateLayout))
	require.NotNil(t, c.Income)
	assert.Equal(t, 50000.0, *c.Income)

	_, err = gw.GetClient(ctx, base, 999)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestSearch(t *testing.T) {
	gw := startServer(t, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		criteria model.SearchCriteria
		wantIDs  []int64
	}{
		{"substring case-insensitive", model.SearchCriteria{LastName: model.Some("OV")}, []int64{1, 2, 3}},
		{"exact birth date", model.SearchCriteria{BirthDate: model.Some("06-01-2005")}, []int64{3}},
		{"income range", model.SearchCriteria{IncomeFrom: model.Some(60000.0)}, []int64{1}},
		{"no match", model.SearchCriteria{FirstName: model.Some("Zed")}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gw.SearchClients(ctx, base, tt.criteria)
			require.NoError(t, err)
			ids := make([]int64, 0, len(got))
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestScoring(t *testing.T) {
	gw := startServer(t, nil)
	s, err := gw.GetScoring(context.Background(), base, 2)
	require.NoError(t, err)
	assert.Equal(t, 60000.0, s.PredictIncome)
	assert.Equal(t, 40000.0, s.CreditLimit)
	assert.Nil(t, s.MaxCreditLimit)
	assert.Equal(t, []string{"x"}, s.PositiveFactors)
	assert.Equal(t, []string{}, s.NegativeFactors)

	_, err = gw.GetScoring(context.Background(), base, 999)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestMetricsViewEndToEnd(t *testing.T) {
	gw := startServer(t, nil)
	v := views.NewMetricsView(views.Deps{Gateway: gw, Base: base})
	defer v.Close()

	v.Navigate(2)
	v.Wait()
	st := v.State()
	require.Equal(t, "success", st.Status.String(), "err: %v", st.Err)
	assert.Equal(t, "Petrova Anna", st.ViewModel.DisplayName)
	assert.InDelta(t, 0.4, st.ViewModel.Slider.Position, 1e-9)
}

func TestHandle_Direct(t *testing.T) {
	srv := New(nil)
	tests := []struct {
		method, uri string
		status      int
		body        string
	}{
		{"GET", "/api/clients/search", 400, `{"error":"at least one search parameter is required"}`},
		{"GET", "/api/clients/search?first_name=", 400, ""},
		{"GET", "/api/clients/search?income_from=abc", 400, ""},
		{"GET", "/api/clients/999", 404, `{"error":"client not found"}`},
		{"GET", "/api/clients/999/scoring", 404, `{"error":"client not found"}`},
		{"GET", "/api/clients/abc", 400, `{"error":"invalid client ID"}`},
		{"GET", "/api/clients/1/history", 404, ""},
		{"GET", "/other", 404, ""},
		{"POST", "/api/clients", 405, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.uri, func(t *testing.T) {
			var ctx fasthttp.RequestCtx
			ctx.Request.Header.SetMethod(tt.method)
			ctx.Request.SetRequestURI(tt.uri)
			srv.Handle(&ctx)
			assert.Equal(t, tt.status, ctx.Response.StatusCode())
			if tt.body != "" {
				assert.JSONEq(t, tt.body, string(ctx.Response.Body()))
			}
		})
	}
}

func TestLoadFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	data := `{
  "clients": [{"id": 10, "first_name": "Vera", "last_name": "Lebedeva", "birth_date": "01-02-1990", "income": 70000}],
  "scorings": [{"id": 10, "predict_income": 75000, "credit_limit": 120000, "max_credit_limit": 300000,
                "positive_factors": ["a"], "negative_factors": [], "recommendations": ["b"]}]
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	fx, err := LoadFixtures(path)
	require.NoError(t, err)
	require.Len(t, fx.Clients, 1)
	assert.Equal(t, "Lebedeva Vera", fx.Clients[0].FullName())
	require.Contains(t, fx.Scorings, int64(10))
	assert.Equal(t, 120000.0, fx.Scorings[10].CreditLimit)

	require.NoError(t, os.WriteFile(path, []byte(`{"clients":[{"id":1,"birth_date":"1990-02-01"}]}`), 0644))
	_, err = LoadFixtures(path)
	assert.Error(t, err)
}
