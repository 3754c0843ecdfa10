package twitter

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"time"

	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
	"github.com/NethermindEth/twitterbot/pkg/utils/metrics"
)

const (
	DefaultAPIBaseURL    = "https://api.twitter.com/1.1"
	DefaultUploadBaseURL = "https://upload.twitter.com/1.1"
)

var ErrInvalidConfig = stderrors.New("invalid configuration")

// ClientConfig configures a Client. Only Credentials is required; the
// readiness of the credentials is checked by each operation.
type ClientConfig struct {
	Credentials Credentials

	// HTTPClient sends requests. Defaults to a new *http.Client.
	HTTPClient Doer
	// Signer computes the Authorization header. Defaults to OAuth1Signer.
	Signer Signer

	APIBaseURL    string
	UploadBaseURL string

	// Timeout bounds each call when positive.
	Timeout time.Duration

	// Metrics, when set, receives per-operation latencies and counters.
	Metrics *metrics.MetricsCollector
}

// Client talks to the v1.1 REST API. It is read-only after construction and
// safe for concurrent use; every call signs its own request.
type Client struct {
	credentials   Credentials
	doer          Doer
	signer        Signer
	apiBaseURL    string
	uploadBaseURL string
	timeout       time.Duration
	metrics       *metrics.MetricsCollector
}

func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, ErrInvalidConfig
	}

	c := &Client{
		credentials:   config.Credentials,
		doer:          config.HTTPClient,
		signer:        config.Signer,
		apiBaseURL:    config.APIBaseURL,
		uploadBaseURL: config.UploadBaseURL,
		timeout:       config.Timeout,
		metrics:       config.Metrics,
	}
	if c.doer == nil {
		c.doer = &http.Client{}
	}
	if c.signer == nil {
		c.signer = OAuth1Signer{}
	}
	if c.apiBaseURL == "" {
		c.apiBaseURL = DefaultAPIBaseURL
	}
	if c.uploadBaseURL == "" {
		c.uploadBaseURL = DefaultUploadBaseURL
	}

	for _, base := range []string{c.apiBaseURL, c.uploadBaseURL} {
		if _, err := url.Parse(base); err != nil {
			return nil, errors.Wrap(err, errors.TypeURL, "parse base url")
		}
	}

	return c, nil
}
