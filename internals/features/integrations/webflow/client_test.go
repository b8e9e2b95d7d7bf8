package webflow

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

type fakeCMSServer struct {
	mu       sync.Mutex
	calls    []recorded
	failLive bool
}

func (f *fakeCMSServer) handler(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = sonic.Unmarshal(raw, &body)

	f.mu.Lock()
	f.calls = append(f.calls, recorded{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: body})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case f.failLive && strings.HasSuffix(r.URL.Path, "/live"):
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"item is in the publish queue"}`))
	case r.URL.Path == "/v2/collections/col1/items/publish":
		_, _ = w.Write([]byte(`{"publishedItemIds":["item_9"]}`))
	default:
		_, _ = w.Write([]byte(`{"id":"item_9","isDraft":false,"isArchived":false,"fieldData":{}}`))
	}
}

func newTestClient(t *testing.T, f *fakeCMSServer) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(f.handler))
	t.Cleanup(srv.Close)

	c := NewClient("tok", "col1")
	c.BaseURL = srv.URL
	return c
}

func TestSyncItem_CreateLive(t *testing.T) {
	f := &fakeCMSServer{}
	c := newTestClient(t, f)

	fields := Fields{"name": "Intro"}
	fields.SetString("location", nil)

	res, err := SyncItem(context.Background(), c, "", fields)
	require.NoError(t, err)
	assert.Equal(t, SyncResult{ItemID: "item_9", Live: true}, res)

	require.Len(t, f.calls, 1)
	call := f.calls[0]
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/v2/collections/col1/items/live", call.Path)
	assert.Equal(t, "Bearer tok", call.Auth)
	assert.Equal(t, false, call.Body["isDraft"])
	assert.Equal(t, false, call.Body["isArchived"])

	fd, ok := call.Body["fieldData"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Intro", fd["name"])
	assert.Equal(t, "", fd["location"])
}

func TestSyncItem_FallsBackToStagedAndPublish(t *testing.T) {
	f := &fakeCMSServer{failLive: true}
	c := newTestClient(t, f)

	res, err := SyncItem(context.Background(), c, "item_9", Fields{"name": "Intro"})
	require.NoError(t, err)
	assert.Equal(t, SyncResult{ItemID: "item_9", Live: true, Fallback: true}, res)

	require.Len(t, f.calls, 3)
	assert.Equal(t, http.MethodPatch, f.calls[0].Method)
	assert.Equal(t, "/v2/collections/col1/items/item_9/live", f.calls[0].Path)
	assert.Equal(t, http.MethodPatch, f.calls[1].Method)
	assert.Equal(t, "/v2/collections/col1/items/item_9", f.calls[1].Path)
	assert.Equal(t, "/v2/collections/col1/items/publish", f.calls[2].Path)
	assert.Equal(t, []any{"item_9"}, f.calls[2].Body["itemIds"])
}

func TestClient_APIError(t *testing.T) {
	f := &fakeCMSServer{failLive: true}
	c := newTestClient(t, f)

	_, err := c.CreateItemLive(context.Background(), Fields{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "publish queue")
}

func TestClient_NotConfigured(t *testing.T) {
	_, err := NewClient("", "col").CreateItem(context.Background(), Fields{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
