package httpclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckanta-io/ckanta-client/internal/httpclient"
	"github.com/ckanta-io/ckanta-client/pkg/ckan"
)

func TestBuildActionURL(t *testing.T) {
	t.Parallel()

	t.Run("default subpath", func(t *testing.T) {
		t.Parallel()

		client := httpclient.NewClient("http://localhost", "*secret*")
		assert.Equal(t, "http://localhost/api/3/action/group_list", client.BuildActionURL("group_list"))
	})

	t.Run("strips duplicated slashes", func(t *testing.T) {
		t.Parallel()

		client := httpclient.NewClient("http://localhost/", "*secret*",
			httpclient.WithActionSubpath("/api/3/action/"))
		assert.Equal(t, "http://localhost/api/3/action/package_show", client.BuildActionURL("package_show"))
	})
}

func TestCall_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/3/action/user_list", request.URL.Path)
		assert.Equal(t, http.MethodGet, request.Method)
		assert.Equal(t, "test-key", request.Header.Get("Authorization"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"success": true,
			"result":  []string{"alice", "bob"},
		})
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL, "test-key")

	result, err := client.Call(context.Background(), "user_list", nil, true)
	require.NoError(t, err)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, []interface{}{"alice", "bob"}, result["result"])
}

func TestCall_PostSendsJSONPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/3/action/package_create", request.URL.Path)
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "test-key", request.Header.Get("Authorization"))
		assert.Equal(t, "application/json; charset=utf8", request.Header.Get("Content-Type"))

		var payload map[string]interface{}

		err := json.NewDecoder(request.Body).Decode(&payload)
		assert.NoError(t, err)
		assert.Equal(t, "water-points", payload["name"])

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL, "test-key")

	result, err := client.Call(context.Background(), "package_create",
		map[string]interface{}{"name": "water-points"}, false)
	require.NoError(t, err)
	assert.Equal(t, true, result["success"])
}

func TestCall_PostWithoutPayloadFailsBeforeNetwork(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests.Add(1)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL, "test-key")

	_, err := client.Call(context.Background(), "group_list", nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ckan.ErrPayloadRequired)
	assert.Equal(t, int64(0), requests.Load())
}

func TestCall_NonSuccessStatusReturnsAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"success": false,
			"error":   map[string]interface{}{"message": "name already in use", "__type": "Validation Error"},
		})
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL, "test-key")

	_, err := client.Call(context.Background(), "organization_create",
		map[string]interface{}{"name": "dup"}, false)
	require.Error(t, err)

	var apiErr *ckan.APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "organization_create", apiErr.Action)
	assert.Equal(t, "name already in use", apiErr.Message)
}

func TestWithAPIKey_ReturnsIndependentCopy(t *testing.T) {
	t.Parallel()

	var lastAuth atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		lastAuth.Store(request.Header.Get("Authorization"))
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{"success": true})
	}))
	defer server.Close()

	client := httpclient.NewClient(server.URL, "caller-key")
	delegated := client.WithAPIKey("user-key")

	_, err := delegated.Call(context.Background(), "access_request_create",
		map[string]interface{}{"package_id": "x"}, false)
	require.NoError(t, err)
	assert.Equal(t, "user-key", lastAuth.Load())

	_, err = client.Call(context.Background(), "user_show",
		map[string]interface{}{"id": "x"}, false)
	require.NoError(t, err)
	assert.Equal(t, "caller-key", lastAuth.Load())
	assert.Equal(t, "caller-key", client.APIKey())
}
