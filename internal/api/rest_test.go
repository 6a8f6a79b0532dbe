package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pid2go/internal/analysis"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/statistics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const droneConfig = `{"kp": 2, "ki": 0.1, "kd": 0.1, "target": 50, "initialState": 45, "stepCount": 21, "interval": 1}`

func createService(t *testing.T, store persistence.Persistence) (*echo.Echo, *statistics.SimulationStatistics) {
	stats := &statistics.SimulationStatistics{}
	rest := CreateRestService(Options{
		Store:      store,
		Statistics: stats,
		Analysis:   analysis.Options{Tolerance: 0.5, Window: 3},
		Registerer: prometheus.NewRegistry(),
	})
	return rest, stats
}

func createStore(t *testing.T) persistence.Persistence {
	store := persistence.NewPersistence(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, store.Init())
	return store
}

func request(rest *echo.Echo, method string, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	rest.ServeHTTP(rec, req)
	return rec
}

func simulate(t *testing.T, rest *echo.Echo) SimulationResponse {
	rec := request(rest, http.MethodPost, "/simulation/", droneConfig)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response SimulationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestAlive(t *testing.T) {
	// GIVEN
	rest, _ := createService(t, nil)

	// WHEN
	rec := request(rest, http.MethodGet, "/alive", "")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateSimulation(t *testing.T) {
	// GIVEN
	rest, stats := createService(t, nil)
	expected, err := pid.Simulate(pid.Configuration{Kp: 2, Ki: 0.1, Kd: 0.1, Target: 50, InitialState: 45, StepCount: 21, Interval: 1})
	require.NoError(t, err)

	// WHEN
	response := simulate(t, rest)

	// THEN
	assert.NotEmpty(t, response.Run.ID)
	assert.Equal(t, 21, response.Run.Config.StepCount)
	assert.Equal(t, expected, response.Run.Trace)
	assert.Equal(t, expected.FinalState(), response.Summary.FinalState)
	assert.False(t, response.Summary.Diverged)

	expectedRuns := `
# HELP pid2go_simulation_runs_total Number of simulations that have been requested
# TYPE pid2go_simulation_runs_total counter
pid2go_simulation_runs_total 1
`
	err = testutil.CollectAndCompare(statistics.NewSimulationCollector(stats), strings.NewReader(expectedRuns), "pid2go_simulation_runs_total")
	assert.NoError(t, err)
}

func TestCreateSimulation_ZeroInterval(t *testing.T) {
	// GIVEN
	rest, _ := createService(t, nil)

	// WHEN
	rec := request(rest, http.MethodPost, "/simulation/", `{"kp": 1, "target": 10, "stepCount": 3, "interval": 0}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "invalid configuration: interval: interval must not be zero", result.Message)
}

func TestCreateSimulation_InvalidBody(t *testing.T) {
	// GIVEN
	rest, _ := createService(t, nil)

	// WHEN
	rec := request(rest, http.MethodPost, "/simulation/", `{"kp": "abc"`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSimulation_Diverged(t *testing.T) {
	// GIVEN
	rest, _ := createService(t, nil)

	// WHEN
	rec := request(rest, http.MethodPost, "/simulation/", `{"kp": 1e300, "target": 1e300, "stepCount": 3, "interval": 1}`)

	// THEN
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response struct {
		Config  pid.Configuration     `json:"config"`
		Trace   map[string][]*float64 `json:"trace"`
		Summary struct {
			FinalState *float64 `json:"finalState"`
			SettledAt  int      `json:"settledAt"`
			Diverged   bool     `json:"diverged"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 3, response.Config.StepCount)
	assert.True(t, response.Summary.Diverged)
	assert.Nil(t, response.Summary.FinalState)
	assert.Equal(t, -1, response.Summary.SettledAt)

	states := response.Trace["states"]
	require.Len(t, states, 4)
	require.NotNil(t, states[0])
	assert.Equal(t, 0.0, *states[0])
	assert.Nil(t, states[1])
	require.Len(t, response.Trace["errors"], 3)
	require.NotNil(t, response.Trace["errors"][0])
	assert.Equal(t, 1e300, *response.Trace["errors"][0])

	runs := request(rest, http.MethodGet, "/run/", "")
	assert.JSONEq(t, `[]`, runs.Body.String())
}

func TestCreateSimulation_StepCountLimit(t *testing.T) {
	// GIVEN
	rest, stats := createService(t, nil)

	// WHEN
	rec := request(rest, http.MethodPost, "/simulation/", `{"kp": 1, "target": 1, "stepCount": 1000000000, "interval": 1}`)

	// THEN
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "stepCount must be at most 1000000, got 1000000000", result.Message)

	expectedRuns := `
# HELP pid2go_simulation_runs_total Number of simulations that have been requested
# TYPE pid2go_simulation_runs_total counter
pid2go_simulation_runs_total 0
`
	err := testutil.CollectAndCompare(statistics.NewSimulationCollector(stats), strings.NewReader(expectedRuns), "pid2go_simulation_runs_total")
	assert.NoError(t, err)
}

// failingStore rejects every run it is asked to save
type failingStore struct {
	persistence.Persistence
}

func (f failingStore) SaveRun(run persistence.Run) error {
	return errors.New("disk full")
}

func (f failingStore) ListRuns() ([]persistence.Run, error) {
	return []persistence.Run{}, nil
}

func (f failingStore) LoadRun(id string) (persistence.Run, error) {
	return persistence.Run{}, os.ErrNotExist
}

func TestCreateSimulation_StoreFailureIsNotCached(t *testing.T) {
	// GIVEN
	rest, _ := createService(t, failingStore{})

	// WHEN
	rec := request(rest, http.MethodPost, "/simulation/", droneConfig)

	// THEN
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var result Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "disk full", result.Message)

	runs := request(rest, http.MethodGet, "/run/", "")
	assert.Equal(t, http.StatusOK, runs.Code)
	assert.JSONEq(t, `[]`, runs.Body.String())
}

func TestRuns_SameCreationTimeOrderedById(t *testing.T) {
	// GIVEN
	store := createStore(t)
	trace, err := pid.Simulate(pid.Configuration{Kp: 1, Target: 10, StepCount: 2, Interval: 1})
	require.NoError(t, err)
	createdAt := time.Unix(100, 0).UTC()
	for _, id := range []string{"c", "a", "b"} {
		run := persistence.Run{ID: id, CreatedAt: createdAt, Config: pid.Configuration{Kp: 1, Target: 10, StepCount: 2, Interval: 1}, Trace: trace}
		require.NoError(t, store.SaveRun(run))
	}
	rest, _ := createService(t, store)

	// WHEN
	rec := request(rest, http.MethodGet, "/run/", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []persistence.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	ids := []string{}
	for _, run := range runs {
		ids = append(ids, run.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestRuns_InMemory(t *testing.T) {
	// GIVEN
	rest, _ := createService(t, nil)
	first := simulate(t, rest)
	second := simulate(t, rest)

	// WHEN
	rec := request(rest, http.MethodGet, "/run/", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []persistence.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	ids := []string{}
	for _, run := range runs {
		ids = append(ids, run.ID)
	}
	assert.ElementsMatch(t, []string{first.Run.ID, second.Run.ID}, ids)
}

func TestRun_GetAndDelete(t *testing.T) {
	// GIVEN
	rest, _ := createService(t, nil)
	created := simulate(t, rest)

	// WHEN
	rec := request(rest, http.MethodGet, "/run/"+created.Run.ID, "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var run persistence.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, created.Run.Trace, run.Trace)

	// WHEN
	rec = request(rest, http.MethodDelete, "/run/"+created.Run.ID+"/", "")

	// THEN
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = request(rest, http.MethodGet, "/run/"+created.Run.ID+"/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRun_Unknown(t *testing.T) {
	// GIVEN
	rest, _ := createService(t, createStore(t))

	// WHEN
	get := request(rest, http.MethodGet, "/run/unknown/", "")
	del := request(rest, http.MethodDelete, "/run/unknown/", "")

	// THEN
	assert.Equal(t, http.StatusNotFound, get.Code)
	assert.Equal(t, http.StatusNotFound, del.Code)
	var result Result
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &result))
	assert.Equal(t, "No item with id 'unknown' found", result.Message)
}

func TestRuns_Persisted(t *testing.T) {
	// GIVEN
	store := createStore(t)
	rest, _ := createService(t, store)
	created := simulate(t, rest)

	// WHEN
	restarted, _ := createService(t, store)
	rec := request(restarted, http.MethodGet, "/run/"+created.Run.ID+"/", "")

	// THEN
	require.Equal(t, http.StatusOK, rec.Code)
	var run persistence.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, created.Run.Config, run.Config)

	// WHEN
	rec = request(restarted, http.MethodDelete, "/run/"+created.Run.ID+"/", "")

	// THEN
	assert.Equal(t, http.StatusNoContent, rec.Code)
	runs, err := store.ListRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRequestMetrics(t *testing.T) {
	// GIVEN
	registry := prometheus.NewRegistry()
	rest := CreateRestService(Options{Registerer: registry})

	// WHEN
	request(rest, http.MethodGet, "/alive/", "")

	// THEN
	count, err := testutil.GatherAndCount(registry, "pid2go_api_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
