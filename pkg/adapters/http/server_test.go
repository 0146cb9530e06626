package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/agent"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const counterTree = `
type: Sequence
label: root
children:
  - type: Debug
    children:
      - type: Limiter
        label: budget
        count: 2
        children:
          - type: Succeeder
            children:
              - type: ReturnStatus
                status: SUCCESS
  - type: ReturnStatus
    status: RUNNING
`

type fixture struct {
	handler http.Handler
	server  *Server
	manager *agent.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	loader := memory.NewLoader(map[string]string{"counter": counterTree})
	engine, err := arbor.New("", arbor.WithLoader(loader), arbor.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, err)

	manager := agent.NewManager(engine)
	server := NewServer(engine, manager, WithRegistry(engine.Registry()), WithGatherer(reg))
	return &fixture{handler: server.Routes(), server: server, manager: manager}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func TestServer_Trees(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "GET", "/trees", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["counter"]`, w.Body.String())

	w = f.do(t, "GET", "/trees/counter", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var spec domain.Spec
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &spec))
	assert.Equal(t, "Sequence", spec.Type)
	assert.Equal(t, 5, spec.Count())

	w = f.do(t, "GET", "/trees/counter/graph", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))
	assert.Contains(t, w.Body.String(), `n{{"root <br/> <i>Sequence</i>"}}`)

	w = f.do(t, "GET", "/trees/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_AgentLifecycle(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "POST", "/agents", SpawnRequest{Tree: "counter", ID: "a1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.do(t, "POST", "/agents", SpawnRequest{Tree: "counter", ID: "a1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, "POST", "/agents", SpawnRequest{Tree: "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, "POST", "/agents", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, "POST", "/agents/a1/tick", TickRequest{Delta: 0.016})
	require.Equal(t, http.StatusOK, w.Code)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, domain.Running, snap.LastStatus)
	assert.Equal(t, uint64(1), snap.Ticks)

	w = f.do(t, "GET", "/agents/a1/debug", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var debug map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &debug))
	assert.Equal(t, 1.0, debug["debug.budget:remaining"])
	assert.Equal(t, "SUCCESS", debug["debug.budget:status"])
	assert.NotContains(t, debug, "delta")

	w = f.do(t, "GET", "/trees/counter/graph?agent=a1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "class n_0_0 success;")

	w = f.do(t, "GET", "/agents", nil)
	assert.JSONEq(t, `["a1"]`, w.Body.String())

	w = f.do(t, "DELETE", "/agents/a1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, "GET", "/agents/a1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = f.do(t, "POST", "/agents/a1/tick", TickRequest{Delta: 0.1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_HealthNodesMetrics(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "GET", "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = f.do(t, "GET", "/nodes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ClockLimiter"`)
	assert.Contains(t, w.Body.String(), `"params":{"seconds":"float","startat":"float"}`)

	f.do(t, "POST", "/agents", SpawnRequest{Tree: "counter", ID: "m"})
	f.do(t, "POST", "/agents/m/tick", TickRequest{Delta: 0.1})

	w = f.do(t, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `arbor_ticks_total{status="RUNNING",tree="counter"} 1`)
}

func TestServer_SubscribeEvents(t *testing.T) {
	f := newFixture(t)
	f.do(t, "POST", "/agents", SpawnRequest{Tree: "counter", ID: "s1"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/agents/s1/events?watch=status", nil).WithContext(ctx)
	done := make(chan struct{})
	go func() {
		f.handler.ServeHTTP(wSub, reqSub)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return f.server.Streams.Subscribers("s1") == 1
	}, time.Second, 10*time.Millisecond)

	// First tick changes the status, the second only changes local data.
	f.do(t, "POST", "/agents/s1/tick", TickRequest{Delta: 0.1})
	f.do(t, "POST", "/agents/s1/tick", TickRequest{Delta: 0.1})

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	output := wSub.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Equal(t, 1, strings.Count(output, `"status":"RUNNING"`))
}

func TestStreamManager_Unsubscribe(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("x")
	assert.Equal(t, 1, sm.Subscribers("x"))

	sm.Broadcast("x", &domain.SnapshotDiff{AgentID: "x"})
	sm.Broadcast("x", nil)
	cancel()

	diff, ok := <-ch
	require.True(t, ok)
	assert.Equal(t, "x", diff.AgentID)
	_, ok = <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, sm.Subscribers("x"))
}
