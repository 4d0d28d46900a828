package dfsfeed

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/logging"
	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const slateBookFixture = `{
	"slates": [
		{
			"slate_id": "902",
			"url": "/nfl/slates/902",
			"slate_type": "Classic",
			"team_count": 24,
			"game_count": 12,
			"start_hhmm": "13:00",
			"showdown_flag": 0,
			"long_dow_name": "Sunday",
			"month_daynum": "Nov 9",
			"slate_dates": [
				{"start_date": "2025-11-09", "short_dow_name": "Sun", "long_dow_name": "Sunday", "month_daynum": "Nov 9"},
				{"start_date": "2025-11-10", "short_dow_name": "Mon", "long_dow_name": "Monday", "month_daynum": "Nov 10"}
			]
		},
		{"slate_id": "", "slate_type": "Classic"},
		{
			"slate_id": "903",
			"slate_type": "SD: PHI @ DAL",
			"team_count": 2,
			"game_count": 1,
			"start_hhmm": "20:15",
			"showdown_flag": 1,
			"long_dow_name": "Thursday",
			"month_daynum": "Nov 6"
		}
	]
}`

func newTestClient(t *testing.T, handler http.Handler, cfg ClientConfig) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL
	cfg.Logger = logging.NewNop()
	return NewClient(cfg)
}

func TestClient_FetchSlateBook(t *testing.T) {
	var gotQuery atomic.Value
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/data/slates/recent/NFL/draftkings", r.URL.Path)
		gotQuery.Store(r.URL.Query().Encode())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(slateBookFixture))
	}), ClientConfig{APIKey: "sekrit"})

	book, err := client.FetchSlateBook(t.Context(), "2025-11-06", "")
	require.NoError(t, err)

	assert.Contains(t, gotQuery.Load(), "date=2025-11-06")
	assert.Contains(t, gotQuery.Load(), "api_key=sekrit")

	require.Len(t, book.Slates, 2, "slates without an id are dropped")
	assert.Equal(t, "2025-11-06", book.Date)

	classic := book.Slates[0]
	assert.Equal(t, "902", classic.ID)
	assert.Equal(t, 12, classic.GameCount)
	assert.False(t, classic.Showdown)
	require.Len(t, classic.Dates, 2)
	assert.Equal(t, "2025-11-09", classic.Dates[0].StartDate)
	assert.Equal(t, "Monday", classic.Dates[1].LongDayName)

	showdown := book.Slates[1]
	assert.True(t, showdown.Showdown)
	assert.Equal(t, "SD: PHI @ DAL", showdown.SlateType)
	assert.Equal(t, "20:15", showdown.StartTime)
}

func TestClient_FetchSalaryRows(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/data/ppg-projections/NFL/draftkings", r.URL.Path)
		require.Equal(t, "902", r.URL.Query().Get("slate"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"players": [
				{"name": "A.J. Brown", "pos": "WR", "team": "PHI", "opp": "@DAL", "salary": 7600, "ppg_proj": 18.4, "week": 10, "game_date": "2025-11-06"},
				{"name": "", "pos": "WR"},
				{"name": "Eagles", "pos": "DST", "team": "PHI", "salary": 3200}
			]
		}`))
	}), ClientConfig{})

	rows, err := client.FetchSalaryRows(t.Context(), "2025-11-06", "902")
	require.NoError(t, err)
	require.Len(t, rows, 2, "nameless rows are dropped")

	assert.Equal(t, "A.J. Brown", rows[0].Name)
	assert.Equal(t, 7600, rows[0].Salary)
	assert.Equal(t, "@DAL", rows[0].Opponent)
	assert.Equal(t, "2025-11-06", rows[0].GameDate)
	assert.Equal(t, "DST", rows[1].Position)
}

func TestClient_FetchSalaryRows_RequiresDateAndSlate(t *testing.T) {
	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	_, err := client.FetchSalaryRows(t.Context(), "", "902")
	require.Error(t, err)
	_, err = client.FetchSalaryRows(t.Context(), "2025-11-06", "")
	require.Error(t, err)
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"slates": []}`))
	}), ClientConfig{MaxRetries: 1})

	book, err := client.FetchSlateBook(t.Context(), "2025-11-06", "")
	require.NoError(t, err)
	assert.Empty(t, book.Slates)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_DoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}), ClientConfig{MaxRetries: 3})

	_, err := client.FetchSlateBook(t.Context(), "2025-11-06", "")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx responses are terminal")
}

func TestClient_CircuitBreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}), ClientConfig{
		MaxRetries: 0,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for range 2 {
		_, err := client.FetchSlateBook(t.Context(), "2025-11-06", "")
		require.Error(t, err)
	}
	before := calls.Load()

	_, err := client.FetchSlateBook(t.Context(), "2025-11-06", "")
	require.Error(t, err)
	assert.Equal(t, before, calls.Load(), "open breaker should short-circuit before the transport")
}

func TestSanitizeSensitiveText_RedactsAPIKey(t *testing.T) {
	got := sanitizeSensitiveText(`Get "https://feed/api?date=x&api_key=sekrit": timeout`, "sekrit")
	assert.NotContains(t, got, "sekrit")
	assert.Contains(t, got, "api_key=REDACTED")
}
