package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/medreminder/internal/client/client"
	"github.com/dmitrijs2005/medreminder/internal/client/credentials"
	"github.com/dmitrijs2005/medreminder/internal/client/repositories/keyvalue"
	"github.com/dmitrijs2005/medreminder/internal/client/storage"
	"github.com/dmitrijs2005/medreminder/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fake API ----

type call struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

type fakeAPI struct {
	t      *testing.T
	mux    *http.ServeMux
	mu     sync.Mutex
	calls  []call
	server *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{t: t, mux: http.NewServeMux()}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		api.mu.Lock()
		api.calls = append(api.calls, call{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(b),
		})
		api.mu.Unlock()
		api.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.server.Close)
	return api
}

// reply registers a fixed answer for "METHOD /path".
func (a *fakeAPI) reply(pattern string, status int, body string) {
	a.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (a *fakeAPI) recorded() []call {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]call(nil), a.calls...)
}

func (a *fakeAPI) last() call {
	calls := a.recorded()
	require.NotEmpty(a.t, calls)
	return calls[len(calls)-1]
}

// ---- wiring ----

type env struct {
	api   *fakeAPI
	store *credentials.Store
	exec  *client.HTTPClient
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	db, err := storage.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := credentials.NewStore(keyvalue.NewSQLiteRepository(db), logging.Discard())
	api := newFakeAPI(t)

	exec, err := client.NewHTTPClient(api.server.URL, 5*time.Second, store, logging.Discard())
	require.NoError(t, err)

	return &env{api: api, store: store, exec: exec}
}

func (e *env) signIn(t *testing.T, access string) {
	t.Helper()
	require.NoError(t, e.store.SaveSession(context.Background(), credentials.Session{
		AccessToken:  access,
		RefreshToken: "R1",
		User:         &credentials.User{ID: "7", Email: "a@b.com"},
	}))
}
