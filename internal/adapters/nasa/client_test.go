package nasa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neowatch/internal/domain"
)

const feedBody = `{
  "element_count": 2,
  "near_earth_objects": {
    "2025-06-15": [
      {
        "id": "3542519",
        "neo_reference_id": "3542519",
        "name": "(2010 PK9)",
        "nasa_jpl_url": "https://ssd.jpl.nasa.gov/tools/sbdb_lookup.html#/?sstr=3542519",
        "absolute_magnitude_h": 21.87,
        "is_potentially_hazardous_asteroid": true,
        "estimated_diameter": {
          "kilometers": {
            "estimated_diameter_min": 0.1058168859,
            "estimated_diameter_max": 0.2366137501
          }
        },
        "close_approach_data": [
          {
            "close_approach_date": "2025-06-15",
            "relative_velocity": {"kilometers_per_hour": "65260.5717781091"},
            "miss_distance": {"kilometers": "45290298.225725659", "lunar": "117.819"},
            "orbiting_body": "Earth"
          }
        ]
      },
      {
        "id": "54016476",
        "neo_reference_id": "54016476",
        "name": "(2020 GE)",
        "nasa_jpl_url": "",
        "absolute_magnitude_h": 26.6,
        "is_potentially_hazardous_asteroid": false,
        "estimated_diameter": {"kilometers": {"estimated_diameter_min": 0.0121, "estimated_diameter_max": 0.027}},
        "close_approach_data": []
      }
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "TEST_KEY", 5*time.Second)
}

func TestRangeParsesFeed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed", r.URL.Path)
		assert.Equal(t, "TEST_KEY", r.URL.Query().Get("api_key"))
		assert.Equal(t, "2025-06-15", r.URL.Query().Get("start_date"))
		w.Write([]byte(feedBody))
	})

	byDay, err := c.Range(context.Background(), "2025-06-15", "2025-06-15")
	require.NoError(t, err)

	neos := byDay["2025-06-15"]
	require.Len(t, neos, 2)
	assert.Equal(t, "(2010 PK9)", neos[0].Name)
	assert.True(t, neos[0].IsHazardous)
	assert.InDelta(t, 0.2366, neos[0].DiameterMaxKm(), 0.001)

	km, ok := neos[0].MissDistanceKm()
	require.True(t, ok, "string miss distance parses")
	assert.InDelta(t, 45290298.2, km, 0.1)
	assert.InDelta(t, 65260.6, neos[0].VelocityKmh(), 0.1)

	_, ok = neos[1].MissDistanceKm()
	assert.False(t, ok, "empty close_approach_data round-trips as absent")
}

func TestRangeNonSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"over rate limit"}`, http.StatusTooManyRequests)
	})

	_, err := c.Range(context.Background(), "2025-06-15", "2025-06-15")

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.Status)
}

func TestRangeMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"near_earth_objects": "not-a-map"`))
	})

	_, err := c.Range(context.Background(), "2025-06-15", "2025-06-15")

	var upstream *domain.UpstreamError
	assert.ErrorAs(t, err, &upstream)
}

func TestLookupNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.Lookup(context.Background(), "0000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookupParsesRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/neo/3542519", r.URL.Path)
		w.Write([]byte(`{"id":"3542519","name":"(2010 PK9)","is_potentially_hazardous_asteroid":true}`))
	})

	rec, err := c.Lookup(context.Background(), "3542519")
	require.NoError(t, err)
	assert.Equal(t, "(2010 PK9)", rec.Name)
	assert.True(t, rec.IsHazardous)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	c := New(srv.URL, "TEST_KEY", time.Second)

	_, err := c.Range(context.Background(), "2025-06-15", "2025-06-15")

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Zero(t, upstream.Status, "no HTTP response means no status")
}

func TestStatsReturnsRawDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stats", r.URL.Path)
		w.Write([]byte(`{"near_earth_object_count":32803,"close_approach_count":4483732}`))
	})

	raw, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"near_earth_object_count":32803,"close_approach_count":4483732}`, string(raw))
}
