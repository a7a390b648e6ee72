package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	Items int `json:"items"`
}

func TestHubPublish(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, r.URL.Query().Get("visitor"), message{Items: 0})
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?visitor=v1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var got message
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, 0, got.Items)
	require.Eventually(t, func() bool { return hub.Connections("v1") == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish("v2", message{Items: 9})
	hub.Publish("v1", message{Items: 2})
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, 2, got.Items)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Connections("v1") == 0 }, time.Second, 10*time.Millisecond)
}
