package login

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
	"github.com/NethermindEth/twitterbot/pkg/utils/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeProvider answers the request_token and access_token legs.
type fakeProvider struct {
	*httptest.Server

	mu          sync.Mutex
	requestAuth string
	accessAuth  string
	failRequest bool
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	p := &fakeProvider{}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/request_token", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.requestAuth = r.Header.Get("Authorization")
		if p.failRequest {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, "bad consumer key")
			return
		}
		io.WriteString(w, "oauth_token=req-token&oauth_token_secret=req-secret&oauth_callback_confirmed=true")
	})
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.accessAuth = r.Header.Get("Authorization")
		io.WriteString(w, "oauth_token=user-token&oauth_token_secret=user-secret&screen_name=testbot")
	})
	p.Server = httptest.NewServer(mux)
	t.Cleanup(p.Close)
	return p
}

func (p *fakeProvider) headers() (request, access string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requestAuth, p.accessAuth
}

func (p *fakeProvider) endpoint() oauth1.Endpoint {
	return oauth1.Endpoint{
		RequestTokenURL: p.URL + "/oauth/request_token",
		AuthorizeURL:    p.URL + "/oauth/authenticate",
		AccessTokenURL:  p.URL + "/oauth/access_token",
	}
}

func newTestServer(t *testing.T, p *fakeProvider, collector *metrics.MetricsCollector) *Server {
	t.Helper()
	s, err := NewServer(Config{
		Addr:       "127.0.0.1:8181",
		AppKey:     "app-key",
		AppSecret:  "app-secret",
		Endpoint:   p.endpoint(),
		HTTPClient: p.Client(),
		Metrics:    collector,
	})
	require.NoError(t, err)
	return s
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNewServer(t *testing.T) {
	_, err := NewServer(Config{Addr: "127.0.0.1:0", AppKey: "k"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeLogin))

	_, err = NewServer(Config{AppKey: "k", AppSecret: "s"})
	require.Error(t, err)

	s, err := NewServer(Config{Addr: "127.0.0.1:8181", AppKey: "k", AppSecret: "s"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.twitter.com/oauth/authenticate", s.oauth.Endpoint.AuthorizeURL)
	assert.Equal(t, "http://127.0.0.1:8181/login", s.LoginURL())
	assert.Equal(t, "http://127.0.0.1:8181/callback", s.CallbackURL())
}

func TestServer_Flow(t *testing.T) {
	p := newFakeProvider(t)
	collector := metrics.NewMetricsCollector()
	s := newTestServer(t, p, collector)

	rec := get(s, "/login")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, p.URL+"/oauth/authenticate?oauth_token=req-token", rec.Header().Get("Location"))
	requestAuth, _ := p.headers()
	assert.Contains(t, requestAuth, `oauth_consumer_key="app-key"`)
	assert.Contains(t, requestAuth, "oauth_callback=")

	rec = get(s, "/callback?oauth_token=req-token&oauth_verifier=verifier-123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully logged in", rec.Body.String())
	_, accessAuth := p.headers()
	assert.Contains(t, accessAuth, `oauth_token="req-token"`)
	assert.Contains(t, accessAuth, `oauth_verifier="verifier-123"`)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pair, err := s.WaitForToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, &TokenPair{Token: "user-token", Secret: "user-secret"}, pair)
	assert.Equal(t, int64(1), collector.GetMetrics()[metrics.MetricLogin+"_counter"].Value)
}

func TestServer_CallbackRejections(t *testing.T) {
	p := newFakeProvider(t)
	s := newTestServer(t, p, nil)

	rec := get(s, "/callback?oauth_token=req-token&oauth_verifier=v")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no request token found")

	require.Equal(t, http.StatusTemporaryRedirect, get(s, "/login").Code)

	rec = get(s, "/callback?oauth_token=other-token&oauth_verifier=v")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "oauth token mismatch")

	rec = get(s, "/callback?oauth_token=req-token")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, accessAuth := p.headers()
	assert.Empty(t, accessAuth, "no exchange should happen for rejected callbacks")

	select {
	case <-s.doneCh:
		t.Fatal("flow should still be pending")
	default:
	}
}

func TestServer_Denied(t *testing.T) {
	p := newFakeProvider(t)
	s := newTestServer(t, p, nil)

	require.Equal(t, http.StatusTemporaryRedirect, get(s, "/login").Code)
	rec := get(s, "/callback?denied=req-token")
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := s.WaitForToken(context.Background())
	assert.ErrorIs(t, err, ErrDenied)
}

func TestServer_RequestTokenFailure(t *testing.T) {
	p := newFakeProvider(t)
	p.failRequest = true
	s := newTestServer(t, p, nil)

	rec := get(s, "/login")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to request OAuth token")
}

func TestServer_WaitForTokenContext(t *testing.T) {
	s := newTestServer(t, newFakeProvider(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pair, err := s.WaitForToken(ctx)
	assert.Nil(t, pair)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestServer_StartAndShutdown(t *testing.T) {
	p := newFakeProvider(t)
	s, err := NewServer(Config{
		Addr:       "127.0.0.1:0",
		AppKey:     "app-key",
		AppSecret:  "app-secret",
		Endpoint:   p.endpoint(),
		HTTPClient: p.Client(),
	})
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Shutdown(context.Background())

	assert.False(t, strings.HasSuffix(s.LoginURL(), ":0/login"), "bound port should replace 0")
	assert.Equal(t, s.CallbackURL(), s.oauth.CallbackURL)

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(s.LoginURL())
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)

	resp, err = client.Get(s.CallbackURL() + "?oauth_token=req-token&oauth_verifier=v")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	pair, err := s.WaitForToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-token", pair.Token)

	require.Eventually(t, func() bool {
		resp, err := client.Get(s.LoginURL())
		if err != nil {
			return true
		}
		resp.Body.Close()
		return false
	}, 2*time.Second, 20*time.Millisecond, "server should stop after the flow completes")
}
