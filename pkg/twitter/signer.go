package twitter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dghubble/oauth1"
)

// Signer computes the Authorization header for a request. Implementations
// must produce a fresh nonce and timestamp on every call.
type Signer interface {
	Authorization(method Method, rawURL string, token Token) (string, error)
}

// OAuth1Signer signs requests with OAuth 1.0a HMAC-SHA1.
type OAuth1Signer struct{}

var _ Signer = OAuth1Signer{}

// Authorization runs a bodyless request through an oauth1 transport and keeps
// the header it sets. Nothing is sent over the network.
func (OAuth1Signer) Authorization(method Method, rawURL string, token Token) (string, error) {
	req, err := http.NewRequest(method.mustVerb(), rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create signing request: %w", err)
	}

	capture := &headerCapture{}
	ctx := context.WithValue(context.Background(), oauth1.HTTPClient, &http.Client{Transport: capture})

	config := oauth1.NewConfig(token.AppKey(), token.AppSecret())
	client := config.Client(ctx, oauth1.NewToken(token.UserToken(), token.UserTokenSecret()))

	resp, err := client.Transport.RoundTrip(req)
	if err != nil {
		return "", fmt.Errorf("sign request: %w", err)
	}
	resp.Body.Close()

	if capture.header == "" {
		return "", fmt.Errorf("sign request: no authorization header produced")
	}
	return capture.header, nil
}

// headerCapture is a RoundTripper that records the Authorization header and
// answers with an empty response.
type headerCapture struct {
	header string
}

func (h *headerCapture) RoundTrip(req *http.Request) (*http.Response, error) {
	h.header = req.Header.Get("Authorization")
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       http.NoBody,
		Request:    req,
	}, nil
}
