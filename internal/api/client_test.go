package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"echoai/internal/ux"
)

func TestMain(m *testing.M) {
	// Keep-alive connections from the shared transport unwind on their own
	// schedule after each test server closes.
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

type staticTokens struct {
	token string
}

func (s staticTokens) Token() (string, bool) {
	return s.token, s.token != ""
}

func TestBearerAttachedWhenTokenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"valid": true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{token: "tok-1"})
	_, err := c.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestNoBearerWhenTokenAbsent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"valid": false}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{})
	_, err := c.Verify(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedInvokesHandlerOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Could not validate credentials"}`))
	}))
	defer srv.Close()

	calls := 0
	c := New(srv.URL, staticTokens{token: "stale"})
	c.SetUnauthorizedHandler(func() { calls++ })

	_, err := c.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Could not validate credentials", ErrorDetail(err, ""))
}

func TestServerErrorNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	feed := ux.NewFeed(4)
	c := New(srv.URL, nil, WithNotifier(feed))

	_, err := c.Services(context.Background())
	require.Error(t, err)
	assert.True(t, IsServerError(err))

	notice, ok := feed.Latest()
	require.True(t, ok)
	assert.Equal(t, "Server error. Please try again later.", notice.Message)
	assert.Equal(t, ux.LevelError, notice.Level)
}

func TestClientErrorDoesNotNotify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Memory not found"}`))
	}))
	defer srv.Close()

	feed := ux.NewFeed(4)
	c := New(srv.URL, nil, WithNotifier(feed))

	err := c.DeleteMemory(context.Background(), 42)
	require.Error(t, err)
	assert.False(t, IsServerError(err))
	assert.False(t, IsUnauthorized(err))

	_, ok := feed.Latest()
	assert.False(t, ok, "4xx errors are handled locally, no toast")
}

func TestLoginSendsFormEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/token", r.URL.Path)
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "hunter22", r.PostForm.Get("password"))
		w.Write([]byte(`{"access_token": "fresh", "token_type": "bearer"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	resp, err := c.Login(context.Background(), "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "fresh", resp.AccessToken)
}

func TestMultipartUploadCarriesBearerAndFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/memories/upload/image", r.URL.Path)
		assert.Equal(t, "Bearer tok-9", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "a sunset", r.FormValue("description"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "sunset.jpg", header.Filename)

		w.Write([]byte(`{"id": 7, "content": "a sunset", "content_type": "image"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticTokens{token: "tok-9"})
	mem, err := c.UploadImageMemory(context.Background(), "sunset.jpg", strings.NewReader("jpegbytes"), "a sunset")
	require.NoError(t, err)
	assert.Equal(t, 7, mem.ID)
}

// TestMemoryEndpointPaths pins the client to the routes the backend
// actually serves; anything else gets a 404 from the mux.
func TestMemoryEndpointPaths(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/memories/text", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req CreateMemoryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "first day of school", req.Content)
		assert.Equal(t, "School", req.Title)
		w.Write([]byte(`{"id": 1, "content": "first day of school", "content_type": "text"}`))
	})
	mux.HandleFunc("/memories/upload/voice", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Morning note", r.FormValue("title"))
		w.Write([]byte(`{"id": 2, "content": "transcribed", "content_type": "voice"}`))
	})
	mux.HandleFunc("/memories/stats/overview", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_memories": 3, "by_type": {"text": 2, "voice": 1}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, nil)

	mem, err := c.CreateTextMemory(context.Background(), CreateMemoryRequest{Content: "first day of school", Title: "School"})
	require.NoError(t, err)
	assert.Equal(t, 1, mem.ID)

	mem, err = c.UploadVoiceMemory(context.Background(), "note.m4a", strings.NewReader("audio"), "Morning note")
	require.NoError(t, err)
	assert.Equal(t, 2, mem.ID)

	stats, err := c.MemoryStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalMemories)
	assert.Equal(t, 2, stats.ByType["text"])
}

func TestSearchMemoriesDecodesBackendShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/memories/search", r.URL.Path)
		w.Write([]byte(`[{"content": "coffee with Sam", "metadata": {"source": "manual"}, "similarity_score": 0.87, "memory_id": 12}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	results, err := c.SearchMemories(context.Background(), SearchRequest{Query: "coffee"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "coffee with Sam", results[0].Content)
	assert.Equal(t, 0.87, results[0].SimilarityScore)
	assert.Equal(t, 12, results[0].MemoryID)
	assert.Equal(t, "manual", results[0].Metadata["source"])
}

func TestMemoriesQueryEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Memories(context.Background(), MemoryQuery{Skip: 10, Limit: 5, ContentType: "text"})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "skip=10")
	assert.Contains(t, gotQuery, "limit=5")
	assert.Contains(t, gotQuery, "content_type=text")
}

func TestValidationDetailArrayCollapses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"msg": "field required", "loc": ["body", "email"]}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Register(context.Background(), RegisterRequest{Username: "bob"})
	require.Error(t, err)
	assert.Equal(t, "field required", ErrorDetail(err, "fallback"))
}
