package twitter

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
)

// Method is an HTTP method accepted by the API. Only MethodGet and
// MethodPost exist.
type Method struct {
	verb string
}

var (
	MethodGet  = Method{verb: http.MethodGet}
	MethodPost = Method{verb: http.MethodPost}
)

func (m Method) String() string {
	return m.verb
}

func (m Method) mustVerb() string {
	if m.verb == "" {
		panic("twitter: request built with the zero Method")
	}
	return m.verb
}

// signedRequest is built fresh for every call and never reused.
type signedRequest struct {
	method        Method
	url           string
	authorization string
}

// buildURL joins base and path and encodes params into the query string.
// Spaces end up as %20 rather than '+', which the API rejects in status text;
// every other character keeps its standard percent-encoding.
func buildURL(base, path string, params url.Values) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", errors.Wrap(err, errors.TypeURL, "parse endpoint")
	}
	if len(params) > 0 {
		u.RawQuery = strings.ReplaceAll(params.Encode(), "+", "%20")
	}
	return u.String(), nil
}

func (c *Client) sign(method Method, rawURL string, token Token) (*signedRequest, error) {
	method.mustVerb()

	header, err := c.signer.Authorization(method, rawURL, token)
	if err != nil {
		return nil, err
	}

	return &signedRequest{
		method:        method,
		url:           rawURL,
		authorization: header,
	}, nil
}
