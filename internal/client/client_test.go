package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorhub/memberkit/internal/credentials"
	"github.com/creatorhub/memberkit/internal/domain"
	"github.com/creatorhub/memberkit/internal/observability"
	"github.com/creatorhub/memberkit/internal/persona"
)

// spyStore counts reads per key.
type spyStore struct {
	*credentials.MemoryStore
	mu    sync.Mutex
	reads map[credentials.Key]int
}

func newSpyStore() *spyStore {
	return &spyStore{MemoryStore: credentials.NewMemoryStore(), reads: make(map[credentials.Key]int)}
}

func (s *spyStore) Get(ctx context.Context, key credentials.Key) (string, bool, error) {
	s.mu.Lock()
	s.reads[key]++
	s.mu.Unlock()
	return s.MemoryStore.Get(ctx, key)
}

func (s *spyStore) readsOf(key credentials.Key) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[key]
}

// recordingServer is a network spy that remembers every request it receives.
type recordingServer struct {
	*httptest.Server
	hits     atomic.Int32
	mu       sync.Mutex
	requests []*http.Request
	bodies   [][]byte
}

func newRecordingServer(t *testing.T, handler http.HandlerFunc) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.hits.Add(1)
		body, _ := io.ReadAll(r.Body)
		rs.mu.Lock()
		rs.requests = append(rs.requests, r)
		rs.bodies = append(rs.bodies, body)
		rs.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func (rs *recordingServer) last() (*http.Request, []byte) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	n := len(rs.requests)
	return rs.requests[n-1], rs.bodies[n-1]
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func newTestClient(t *testing.T, baseURL string, store credentials.Store) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL}, Dependencies{Session: credentials.NewSession(store)})
	require.NoError(t, err)
	return c
}

func login(t *testing.T, store credentials.Store, role domain.PersonaRole, tokens domain.PersonaTokens) {
	t.Helper()
	ctx := context.Background()
	session := credentials.NewSession(store)
	require.NoError(t, session.SaveLogin(ctx, domain.SessionCredential{Token: "primary-token", Role: role}))
	require.NoError(t, session.SavePersonaTokens(ctx, tokens, tokens.Campaign != ""))
}

func TestNew(t *testing.T) {
	session := credentials.NewSession(credentials.NewMemoryStore())

	tests := []struct {
		name    string
		cfg     Config
		deps    Dependencies
		wantErr string
	}{
		{name: "valid", cfg: Config{BaseURL: "https://api.example.com/"}, deps: Dependencies{Session: session}},
		{name: "missing base url", cfg: Config{}, deps: Dependencies{Session: session}, wantErr: "base url is required"},
		{name: "relative base url", cfg: Config{BaseURL: "api.example.com"}, deps: Dependencies{Session: session}, wantErr: "invalid api base url"},
		{name: "missing session", cfg: Config{BaseURL: "https://api.example.com"}, wantErr: "credential session is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg, tt.deps)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://api.example.com", c.BaseURL())
		})
	}
}

func TestDo_PublicCallSkipsCredentialStore(t *testing.T) {
	srv := newRecordingServer(t, jsonHandler(http.StatusOK, `{"data":{"token":"t"}}`))
	store := newSpyStore()
	login(t, store, domain.PersonaRoleMember, domain.PersonaTokens{Member: "m"})
	c := newTestClient(t, srv.URL, store)

	_, err := c.Do(context.Background(), NewDescriptor(http.MethodPost, "/users/login",
		WithoutAuth(), WithBody(map[string]string{"login": "a@b.com", "password": "x"})))
	require.NoError(t, err)

	req, _ := srv.last()
	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get(persona.HeaderPersonaType))
	assert.Empty(t, req.Header.Get(persona.HeaderPersonaAuth))
	assert.Zero(t, store.readsOf(credentials.KeyToken))
	assert.Zero(t, store.readsOf(credentials.KeyUserRole))
}

func TestDo_AuthRequiredWithoutToken(t *testing.T) {
	srv := newRecordingServer(t, jsonHandler(http.StatusOK, `{}`))
	c := newTestClient(t, srv.URL, credentials.NewMemoryStore())

	resp, err := c.Do(context.Background(), NewDescriptor(http.MethodGet, "/members/current"))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, IsAuthRequired(err))
	assert.True(t, errors.Is(err, ErrAuthRequired))
	_, hasStatus := StatusOf(err)
	assert.False(t, hasStatus)
	assert.Equal(t, int32(0), srv.hits.Load(), "no network call may be made")
}

func TestPrepare_MemberPersonaHeaders(t *testing.T) {
	store := credentials.NewMemoryStore()
	login(t, store, domain.PersonaRoleMember, domain.PersonaTokens{Member: "member-token", Campaign: "campaign-token"})
	c := newTestClient(t, "https://api.example.com", store)

	req, err := c.Prepare(context.Background(), NewDescriptor(http.MethodGet, "/members/current"))
	require.NoError(t, err)

	assert.Equal(t, "Bearer primary-token", req.Header.Get("Authorization"))
	assert.Equal(t, "member", req.Header.Get(persona.HeaderPersonaType))
	assert.Equal(t, "Bearer member-token", req.Header.Get(persona.HeaderPersonaAuth))
}

func TestPrepare_CreatorPersonaHeaders(t *testing.T) {
	store := credentials.NewMemoryStore()
	login(t, store, domain.PersonaRoleCreator, domain.PersonaTokens{Member: "member-token", Campaign: "campaign-token"})
	c := newTestClient(t, "https://api.example.com", store)

	req, err := c.Prepare(context.Background(), NewDescriptor(http.MethodGet, "/campaigns/me"))
	require.NoError(t, err)

	assert.Equal(t, "campaign", req.Header.Get(persona.HeaderPersonaType))
	assert.NotEqual(t, "creator", req.Header.Get(persona.HeaderPersonaType))
	assert.Equal(t, "Bearer campaign-token", req.Header.Get(persona.HeaderPersonaAuth))
}

func TestPrepare_HeaderPrecedence(t *testing.T) {
	store := credentials.NewMemoryStore()
	login(t, store, domain.PersonaRoleMember, domain.PersonaTokens{Member: "member-token"})
	c := newTestClient(t, "https://api.example.com", store)

	req, err := c.Prepare(context.Background(), NewDescriptor(http.MethodPatch, "/members/settings",
		WithHeader("Content-Type", "text/plain"),
		WithHeader("Accept", "text/html"),
		WithHeader("X-Client-Version", "1.4.0"),
		WithHeader("personatype", "campaign"),
	))
	require.NoError(t, err)

	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "1.4.0", req.Header.Get("X-Client-Version"))
	assert.Equal(t, "campaign", req.Header.Get(persona.HeaderPersonaType), "caller headers merge last")
}

func TestPrepare_IsIdempotent(t *testing.T) {
	store := credentials.NewMemoryStore()
	login(t, store, domain.PersonaRoleMember, domain.PersonaTokens{Member: "member-token"})
	c := newTestClient(t, "https://api.example.com", store)
	d := NewDescriptor(http.MethodGet, "/platform/locations/countries")

	first, err := c.Prepare(context.Background(), d)
	require.NoError(t, err)
	second, err := c.Prepare(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, first.Method, second.Method)
	assert.Equal(t, first.URL.String(), second.URL.String())
	assert.Equal(t, first.Header, second.Header)
	assert.Equal(t, "https://api.example.com/platform/locations/countries", first.URL.String())
}

func TestDo_SerializesBody(t *testing.T) {
	srv := newRecordingServer(t, jsonHandler(http.StatusOK, `{"data":{"available":true}}`))
	store := credentials.NewMemoryStore()
	login(t, store, domain.PersonaRoleCreator, domain.PersonaTokens{Campaign: "c"})
	c := newTestClient(t, srv.URL, store)

	resp, err := c.Do(context.Background(), NewDescriptor(http.MethodPost, "campaigns/check-page-url",
		WithBody(map[string]string{"pageUrl": "my-page"})))
	require.NoError(t, err)
	assert.True(t, resp.IsJSON())

	req, body := srv.last()
	assert.Equal(t, "/campaigns/check-page-url", req.URL.Path)
	assert.JSONEq(t, `{"pageUrl":"my-page"}`, string(body))

	var env domain.Envelope[map[string]bool]
	require.NoError(t, resp.Decode(&env))
	assert.True(t, env.Data["available"])
}

func TestDo_NoBodyWhenDataIsNil(t *testing.T) {
	srv := newRecordingServer(t, jsonHandler(http.StatusOK, `{}`))
	store := credentials.NewMemoryStore()
	login(t, store, domain.PersonaRoleMember, domain.PersonaTokens{})
	c := newTestClient(t, srv.URL, store)

	_, err := c.Do(context.Background(), NewDescriptor(http.MethodGet, "/members/current"))
	require.NoError(t, err)

	_, body := srv.last()
	assert.Empty(t, body)
}

func TestDo_HTTPErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantMessage string
	}{
		{name: "json message", status: http.StatusNotFound, contentType: "application/json", body: `{"message":"Not found"}`, wantMessage: "Not found"},
		{name: "json message list", status: http.StatusBadRequest, contentType: "application/json", body: `{"message":["email must be an email","password too short"]}`, wantMessage: "email must be an email, password too short"},
		{name: "json without message", status: http.StatusConflict, contentType: "application/json", body: `{"error":"dup"}`, wantMessage: "An error occurred"},
		{name: "plain text body", status: http.StatusBadGateway, contentType: "text/html", body: `<html>bad gateway</html>`, wantMessage: "An error occurred"},
		{name: "empty body", status: http.StatusInternalServerError, contentType: "", body: ``, wantMessage: "An error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newRecordingServer(t, func(w http.ResponseWriter, _ *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			c := newTestClient(t, srv.URL, credentials.NewMemoryStore())

			_, err := c.Do(context.Background(), NewDescriptor(http.MethodGet, "/platform/locations/info", WithoutAuth()))
			require.Error(t, err)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, KindHTTP, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.True(t, errors.Is(err, ErrHTTP))
			assert.True(t, errors.Is(err, &Error{Kind: KindHTTP, Status: tt.status}))
		})
	}
}

func TestDo_NonJSONSuccessReturnsText(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNoContent} {
		srv := newRecordingServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(status)
			if status != http.StatusNoContent {
				_, _ = io.WriteString(w, "pong")
			}
		})
		c := newTestClient(t, srv.URL, credentials.NewMemoryStore())

		resp, err := c.Do(context.Background(), NewDescriptor(http.MethodGet, "/ping", WithoutAuth()))
		require.NoError(t, err, "status %d", status)
		assert.Equal(t, status, resp.StatusCode)
		assert.False(t, resp.IsJSON())

		var target map[string]any
		require.NoError(t, resp.Decode(&target))
		assert.Nil(t, target)

		if status == http.StatusOK {
			assert.Equal(t, "pong", resp.Text())
		} else {
			assert.Empty(t, resp.Text())
		}
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestDo_NetworkError(t *testing.T) {
	dialErr := errors.New("dial tcp 10.0.0.1:443: connect: network is unreachable")
	c, err := New(Config{
		BaseURL: "https://api.example.com",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, dialErr
		})},
	}, Dependencies{Session: credentials.NewSession(credentials.NewMemoryStore())})
	require.NoError(t, err)

	_, err = c.Do(context.Background(), NewDescriptor(http.MethodGet, "/platform/locations/countries", WithoutAuth()))
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.Equal(t, "Network error occurred", apiErr.Message)
	assert.Zero(t, apiErr.Status)
	assert.False(t, apiErr.HasStatus())
	assert.True(t, errors.Is(err, dialErr))
	assert.False(t, IsHTTP(err))
}

func TestDo_CanceledContextIsNetworkError(t *testing.T) {
	srv := newRecordingServer(t, jsonHandler(http.StatusOK, `{}`))
	c := newTestClient(t, srv.URL, credentials.NewMemoryStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Do(ctx, NewDescriptor(http.MethodGet, "/platform/locations/countries", WithoutAuth()))
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDo_RecordsMetrics(t *testing.T) {
	srv := newRecordingServer(t, jsonHandler(http.StatusNotFound, `{"message":"Not found"}`))
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	c, err := New(Config{BaseURL: srv.URL}, Dependencies{
		Session: credentials.NewSession(credentials.NewMemoryStore()),
		Metrics: metrics,
	})
	require.NoError(t, err)

	_, _ = c.Do(context.Background(), NewDescriptor(http.MethodGet, "/platform/locations/states?countryCode=US", WithoutAuth()))
	_, _ = c.Do(context.Background(), NewDescriptor(http.MethodGet, "/members/current"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("/platform/locations/states", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Errors.WithLabelValues("/platform/locations/states", "GET", "http")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Errors.WithLabelValues("/members/current", "GET", "auth-required")))
}

func TestResponse_DecodeEnvelope(t *testing.T) {
	resp := &Response{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        []byte(`{"data":[{"code":"US","name":"United States"}],"status":"success","timestamp":"2026-01-01T00:00:00Z","path":"/platform/locations/countries"}`),
	}

	var env domain.Envelope[[]domain.Country]
	require.NoError(t, resp.Decode(&env))
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "/platform/locations/countries", env.Path)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "US", env.Data[0].Code)

	bad := &Response{StatusCode: http.StatusOK, ContentType: "application/json", Body: []byte(`{`)}
	var out json.RawMessage
	assert.Error(t, bad.Decode(&out))
}
