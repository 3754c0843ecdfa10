// Package login runs the three-legged OAuth 1.0a flow on a local callback
// server and hands the resulting user token pair to the caller.
package login

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/dghubble/oauth1"
	"github.com/dghubble/oauth1/twitter"
	"github.com/gin-gonic/gin"

	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
	"github.com/NethermindEth/twitterbot/pkg/utils/metrics"
)

const (
	loginRoute    = "/login"
	callbackRoute = "/callback"
)

// ErrDenied is returned by WaitForToken when the user refused access.
var ErrDenied = stderrors.New("login: access denied by user")

type TokenPair struct {
	Token  string
	Secret string
}

type CallbackQuery struct {
	OAuthToken    string `form:"oauth_token"`
	OAuthVerifier string `form:"oauth_verifier"`
	Denied        string `form:"denied"`
}

type Config struct {
	// Addr is the host:port the callback server listens on.
	Addr string

	AppKey    string
	AppSecret string

	// Endpoint defaults to Twitter's authenticate flow.
	Endpoint oauth1.Endpoint
	// HTTPClient is used for the token requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	Metrics *metrics.MetricsCollector
}

type Server struct {
	addr    string
	oauth   *oauth1.Config
	metrics *metrics.MetricsCollector
	router  *gin.Engine
	server  *http.Server

	doneCh       chan struct{}
	doneOnce     sync.Once
	shutdownOnce sync.Once
	shutdownErr  error

	mu           sync.Mutex
	requestToken *TokenPair
	accessToken  *TokenPair
	err          error
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.AppKey == "" || cfg.AppSecret == "" {
		return nil, errors.New(errors.TypeLogin, "app key and app secret are required", nil)
	}
	if cfg.Addr == "" {
		return nil, errors.New(errors.TypeLogin, "listen address is required", nil)
	}

	endpoint := cfg.Endpoint
	if endpoint == (oauth1.Endpoint{}) {
		endpoint = twitter.AuthenticateEndpoint
	}

	s := &Server{
		addr: cfg.Addr,
		oauth: &oauth1.Config{
			ConsumerKey:    cfg.AppKey,
			ConsumerSecret: cfg.AppSecret,
			Endpoint:       endpoint,
			HTTPClient:     cfg.HTTPClient,
		},
		metrics: cfg.Metrics,
		doneCh:  make(chan struct{}),
	}
	s.oauth.CallbackURL = s.CallbackURL()

	router := gin.Default()
	router.GET(loginRoute, s.handleLogin)
	router.GET(callbackRoute, s.handleCallback)
	s.router = router

	return s, nil
}

func (s *Server) LoginURL() string {
	return "http://" + s.addr + loginRoute
}

func (s *Server) CallbackURL() string {
	return "http://" + s.addr + callbackRoute
}

// Handler exposes the routes without a listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and serves in the background.
// A port of 0 is replaced by the one actually bound.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrap(err, errors.TypeLogin, "listen")
	}
	s.addr = ln.Addr().String()
	s.oauth.CallbackURL = s.CallbackURL()

	s.server = &http.Server{
		Handler: s.router,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("login server error", "error", err)
		}
	}()

	slog.Info("login server started", "login_url", s.LoginURL())
	return nil
}

// WaitForToken blocks until the callback completed the flow or ctx is done.
func (s *Server) WaitForToken(ctx context.Context) (*TokenPair, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.doneCh:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.accessToken, nil
}

// Shutdown stops the listener. It is safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		if s.server == nil {
			return
		}
		if err := s.server.Shutdown(ctx); err != nil {
			s.shutdownErr = errors.Wrap(err, errors.TypeLogin, "server shutdown")
		}
	})
	return s.shutdownErr
}

func (s *Server) handleLogin(c *gin.Context) {
	slog.Info("login request received")

	token, secret, err := s.oauth.RequestToken()
	if err != nil {
		slog.Error("failed to request oauth token", "error", err)
		c.String(http.StatusInternalServerError, fmt.Sprintf("Failed to request OAuth token: %v", err))
		return
	}

	s.mu.Lock()
	s.requestToken = &TokenPair{Token: token, Secret: secret}
	s.mu.Unlock()

	authURL, err := s.oauth.AuthorizationURL(token)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("Failed to build authorization URL: %v", err))
		return
	}

	slog.Info("redirecting to Twitter", "url", authURL.String())
	c.Redirect(http.StatusTemporaryRedirect, authURL.String())
}

func (s *Server) handleCallback(c *gin.Context) {
	var query CallbackQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("Invalid callback query: %v", err))
		return
	}

	slog.Info("callback received")

	if query.Denied != "" {
		s.finish(nil, ErrDenied)
		c.String(http.StatusOK, "Login cancelled")
		return
	}

	if query.OAuthToken == "" || query.OAuthVerifier == "" {
		c.String(http.StatusBadRequest, "missing oauth_token or oauth_verifier")
		return
	}

	requestToken, err := func() (*TokenPair, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.requestToken == nil {
			return nil, fmt.Errorf("no request token found")
		}
		if query.OAuthToken != s.requestToken.Token {
			return nil, fmt.Errorf("oauth token mismatch")
		}
		return s.requestToken, nil
	}()
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	token, secret, err := s.oauth.AccessToken(requestToken.Token, requestToken.Secret, query.OAuthVerifier)
	if err != nil {
		slog.Error("failed to exchange verifier", "error", err)
		c.String(http.StatusInternalServerError, fmt.Sprintf("Failed to authorize token: %v", err))
		return
	}

	s.finish(&TokenPair{Token: token, Secret: secret}, nil)
	c.String(http.StatusOK, "Successfully logged in")
}

// finish records the outcome once and stops the server.
func (s *Server) finish(pair *TokenPair, err error) {
	s.doneOnce.Do(func() {
		s.mu.Lock()
		s.accessToken = pair
		s.err = err
		s.mu.Unlock()

		if s.metrics != nil {
			s.metrics.IncrementCounter(metrics.MetricLogin)
		}
		close(s.doneCh)

		go func() {
			if err := s.Shutdown(context.Background()); err != nil {
				slog.Warn("failed to stop login server", "error", err)
			}
		}()
	})
}
