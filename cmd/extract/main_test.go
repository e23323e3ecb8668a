package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWeatherServer(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		// The "broken" location at lat=1 fails on every attempt.
		if r.URL.Query().Get("lat") == "1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"main":    map[string]interface{}{"temp": 21.5, "humidity": 60},
			"wind":    map[string]interface{}{"speed": 3.2},
			"weather": []map[string]interface{}{{"description": "clear sky"}},
			"dt":      1700000000,
		})
	}))
	t.Cleanup(server.Close)

	return server
}

func execute(t *testing.T, args ...string) error {
	t.Helper()

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestDryRunWithOneFailingLocation(t *testing.T) {
	var requests atomic.Int64
	server := newWeatherServer(t, &requests)

	t.Setenv("OPENWEATHER_API_KEY", "test_api_key")
	t.Setenv("WEATHER_BASE_URL", server.URL)
	t.Setenv("RETRY_BACKOFF", "1ms")

	err := execute(t, "--locations", "broken=1.0,2.0,ottawa=45.4215,-75.6972", "--dry-run")

	require.NoError(t, err)
	// 3 attempts for the failing location plus 1 for the successful one.
	assert.Equal(t, int64(4), requests.Load())
}

func TestDryRunSingleLocationForm(t *testing.T) {
	var requests atomic.Int64
	server := newWeatherServer(t, &requests)

	t.Setenv("OPENWEATHER_API_KEY", "test_api_key")
	t.Setenv("WEATHER_BASE_URL", server.URL)

	err := execute(t, "--location", "ottawa", "--lat", "45.4215", "--lon", "-75.6972", "--dry-run")

	require.NoError(t, err)
	assert.Equal(t, int64(1), requests.Load())
}

func TestMissingAPIKeyFails(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")

	err := execute(t, "--locations", "a=1.0,2.0", "--dry-run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENWEATHER_API_KEY")
}

func TestLocationFormRequiresCoordinates(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test_api_key")

	err := execute(t, "--location", "ottawa", "--dry-run")

	require.Error(t, err)
}

func TestLocationFormsAreMutuallyExclusive(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test_api_key")

	err := execute(t, "--locations", "a=1.0,2.0", "--config", "locations.json", "--dry-run")

	require.Error(t, err)
}

func TestOneLocationFormIsRequired(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test_api_key")

	err := execute(t, "--dry-run")

	require.Error(t, err)
}

func TestUnreadableConfigFileFails(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test_api_key")

	err := execute(t, "--config", "does-not-exist.json", "--dry-run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open locations file")
}
