package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"nostalgiajars/pkg/basket"
	"nostalgiajars/pkg/catalog"
	"nostalgiajars/pkg/catalog/static"
	"nostalgiajars/pkg/identity"
	"nostalgiajars/pkg/live"
	"nostalgiajars/pkg/logger"
	"nostalgiajars/pkg/metrics"
	"nostalgiajars/pkg/quiz"
	"nostalgiajars/pkg/session"
	"nostalgiajars/pkg/storefront"
	"nostalgiajars/pkg/storefront/memory"
	sfredis "nostalgiajars/pkg/storefront/redis"
	"nostalgiajars/pkg/storefront/redis/redistest"
)

type testServer struct {
	*httptest.Server
	client *http.Client
	hub    *live.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, func(*catalog.Catalog) storefront.Registry { return memory.New(time.Hour) })
}

func newTestServerWith(t *testing.T, registry func(*catalog.Catalog) storefront.Registry) *testServer {
	t.Helper()
	cat, err := static.Load()
	require.NoError(t, err)
	m := metrics.New(prometheus.NewRegistry())
	sim := identity.NewSimulated()
	hub := live.NewHub(m.LiveClients())

	h := New(Config{
		Log:        logger.New(io.Discard, logger.LevelError, "test", nil),
		Catalog:    cat,
		Registry:   registry(cat),
		Verifier:   sim,
		CodeSender: sim,
		Hub:        hub,
		Metrics:    m,
		Tracer:     noop.NewTracerProvider().Tracer("test"),
		VisitorTTL: time.Hour,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testServer{Server: srv, client: &http.Client{Jar: jar}, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.URL+path, r)
	require.NoError(t, err)
	resp, err := s.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestProducts(t *testing.T) {
	s := newTestServer(t)

	var all []catalog.Product
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/products", nil, &all))
	assert.Len(t, all, 6)

	var mild []catalog.Product
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/products?category=mild", nil, &mild))
	for _, p := range mild {
		assert.Equal(t, catalog.Mild, p.Category)
	}

	var featured []catalog.Product
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/products/featured?category=spicy&limit=2", nil, &featured))
	assert.Len(t, featured, 2)

	var p catalog.Product
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/products/3", nil, &p))
	assert.Equal(t, 3, p.ID)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/products/404", nil, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/products?category=sweet", nil, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/products/featured?limit=-1", nil, nil))
}

func TestBasketScenario(t *testing.T) {
	s := newTestServer(t)
	var b basketView

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/basket", nil, &b))
	assert.Empty(t, b.Lines)
	assert.Zero(t, b.TotalItems)
	assert.Zero(t, b.TotalPrice)

	two, three := 2, 3
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 1, Quantity: &two}, &b))
	require.Len(t, b.Lines, 1)
	assert.Equal(t, 2, b.TotalItems)
	assert.True(t, b.Visible)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 1, Quantity: &three}, &b))
	require.Len(t, b.Lines, 1)
	assert.Equal(t, 5, b.Lines[0].Quantity)
	assert.Equal(t, 5*449, b.TotalPrice)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/basket/items/1", setQuantityRequest{Quantity: 1}, &b))
	assert.Equal(t, 1, b.Lines[0].Quantity)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/basket/items/1", nil, &b))
	assert.Empty(t, b.Lines)
	assert.Zero(t, b.TotalItems)
	assert.Zero(t, b.TotalPrice)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/basket/items/1", nil, &b))
	assert.Empty(t, b.Lines)
}

func TestBasketEdges(t *testing.T) {
	s := newTestServer(t)
	var b basketView

	zero := 0
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 1, Quantity: &zero}, nil))
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 99}, nil))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/basket/items/2", setQuantityRequest{Quantity: 4}, &b))
	assert.Empty(t, b.Lines, "set quantity never creates a line")

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 2}, &b))
	assert.Equal(t, 1, b.TotalItems)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/basket/hide", nil, &b))
	assert.False(t, b.Visible)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/basket", nil, &b))
	assert.Empty(t, b.Lines)
	assert.False(t, b.Visible)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/basket/show", nil, &b))
	assert.True(t, b.Visible)
}

func TestBasketQuantityBounds(t *testing.T) {
	s := newTestServer(t)
	var b basketView

	huge, most, one := math.MaxInt, basket.MaxQuantity, 1
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 1, Quantity: &huge}, nil))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 1, Quantity: &most}, &b))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 1, Quantity: &one}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/basket/items/1", setQuantityRequest{Quantity: most + 1}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/basket/items/1", setQuantityRequest{Quantity: huge}, nil))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 2, Quantity: &most}, &b))
	require.Len(t, b.Lines, 2)
	assert.Equal(t, most, b.Lines[0].Quantity)
	assert.Equal(t, 2*most, b.TotalItems)
	assert.Equal(t, most*(449+699), b.TotalPrice)
}

func TestVisitorsAreIsolated(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 1}, nil))

	other := &testServer{Server: s.Server, client: &http.Client{}}
	var b basketView
	require.Equal(t, http.StatusOK, other.do(t, http.MethodGet, "/basket", nil, &b))
	assert.Empty(t, b.Lines)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/basket", nil, &b))
	assert.Len(t, b.Lines, 1)
}

func TestLoginFlow(t *testing.T) {
	s := newTestServer(t)
	var st session.State

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/profile", nil, nil))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/session/prompt/show", nil, &st))
	assert.True(t, st.LoginPromptVisible)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/login/otp/code", sendCodeRequest{Phone: "123"}, nil))
	assert.Equal(t, http.StatusAccepted, s.do(t, http.MethodPost, "/login/otp/code", sendCodeRequest{Phone: "9876543210"}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/login/otp/verify", verifyCodeRequest{Phone: "9876543210", Code: "12"}, nil))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/login/otp/verify", verifyCodeRequest{Phone: "9876543210", Code: "123456"}, &st))
	assert.Equal(t, session.State{Name: "Pickle Lover", LoggedIn: true}, st)

	var profile profileView
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/profile", nil, &profile))
	assert.Equal(t, "Pickle Lover", profile.Name)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/logout", nil, &st))
	assert.Equal(t, session.State{}, st)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/logout", nil, &st))
	assert.Equal(t, session.State{}, st)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/login/google", nil, &st))
	assert.Equal(t, "Achar Fan", st.Name)
}

func TestQuiz(t *testing.T) {
	s := newTestServer(t)
	var st quiz.State

	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/quiz/mood", answerRequest{Answer: "bold"}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/quiz/heat", answerRequest{Answer: "warm"}, nil))

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/quiz/heat", answerRequest{Answer: "spicy"}, &st))
	assert.Equal(t, quiz.AwaitingMood, st.Stage)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/quiz/mood", answerRequest{Answer: "bold"}, &st))
	require.NotNil(t, st.Result)
	assert.Equal(t, 3, st.Result.ID)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/quiz/reset", nil, &st))
	assert.Equal(t, quiz.AwaitingHeat, st.Stage)
	assert.Nil(t, st.Result)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/quiz/heat", answerRequest{Answer: "mild"}, &st))
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/quiz/mood", answerRequest{Answer: "tangy"}, &st))
	assert.Equal(t, 5, st.Result.ID)
}

// dialLive opens the visitor's live socket, reads the initial frame and
// waits for the hub to register the connection.
func (s *testServer) dialLive(t *testing.T) *websocket.Conn {
	t.Helper()
	visitor := s.visitor(t)
	cookie := &http.Cookie{Name: visitorCookie, Value: visitor}

	wsURL := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Cookie": {cookie.String()}})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var initial map[string]json.RawMessage
	require.NoError(t, conn.ReadJSON(&initial))
	require.Contains(t, initial, "basket")

	// the hub registers the connection after the initial frame is written
	require.Eventually(t, func() bool { return s.hub.Connections(visitor) == 1 }, time.Second, 10*time.Millisecond)
	return conn
}

func (s *testServer) visitor(t *testing.T) string {
	t.Helper()
	base, err := url.Parse(s.URL)
	require.NoError(t, err)
	cookies := s.client.Jar.Cookies(base)
	require.Len(t, cookies, 1)
	return cookies[0].Value
}

type liveUpdate struct {
	Basket basketView `json:"basket"`
}

func TestLiveUpdates(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/state", nil, nil))
	conn := s.dialLive(t)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 4}, nil))

	var update liveUpdate
	require.NoError(t, conn.ReadJSON(&update))
	assert.NotEmpty(t, update.Basket.Lines)
}

func TestLiveSocketKeepsOtherChanges(t *testing.T) {
	s := newTestServerWith(t, func(c *catalog.Catalog) storefront.Registry {
		return sfredis.New(redistest.New(), c, time.Hour)
	})
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/state", nil, nil))
	visitor := s.visitor(t)
	conn := s.dialLive(t)

	two := 2
	var b basketView
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/basket/items", addItemRequest{ProductID: 1, Quantity: &two}, &b))
	require.Equal(t, 2, b.TotalItems)

	var update liveUpdate
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, 2, update.Basket.TotalItems)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return s.hub.Connections(visitor) == 0 }, time.Second, 10*time.Millisecond)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/basket", nil, &b))
	assert.Equal(t, 2, b.TotalItems)
}

func TestConcurrentRequestsPublishOncePerChange(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/state", nil, nil))
	conn := s.dialLive(t)

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, _ := json.Marshal(addItemRequest{ProductID: 1})
			resp, err := s.client.Post(s.URL+"/basket/items", "application/json", bytes.NewReader(data))
			if assert.NoError(t, err) {
				resp.Body.Close()
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			}
		}()
	}
	wg.Wait()

	var b basketView
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/basket", nil, &b))
	assert.Equal(t, n, b.TotalItems)

	var last liveUpdate
	for i := 0; i < n; i++ {
		require.NoError(t, conn.ReadJSON(&last))
	}
	assert.Equal(t, n, last.Basket.TotalItems)

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var extra liveUpdate
	assert.Error(t, conn.ReadJSON(&extra), "no update beyond one per change")
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", nil, nil))

	resp, err := s.client.Get(s.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "nostalgiajars_http_requests_total")
}
