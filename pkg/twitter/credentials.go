package twitter

import (
	"fmt"

	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
)

// Credential field names, in the order they are checked.
const (
	FieldAppKey          = "app_key"
	FieldAppSecret       = "app_secret"
	FieldUserToken       = "user_token"
	FieldUserTokenSecret = "user_token_secret"
)

// MissingCredentialError is returned by every operation when one of the four
// secrets has not been configured.
type MissingCredentialError struct {
	Field string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("missing credential: %s", e.Field)
}

// ErrorType implements errors.Typed.
func (e *MissingCredentialError) ErrorType() errors.ErrorType {
	return errors.TypeCredential
}

// Credentials accumulates the application (consumer) and user (access token)
// secrets. Setters return an updated copy, so a Credentials value can be
// shared freely once built.
//
//	creds := twitter.NewCredentials().
//		WithAppKey(appKey).
//		WithAppSecret(appSecret).
//		WithUserToken(token).
//		WithUserTokenSecret(tokenSecret)
type Credentials struct {
	appKey          string
	appSecret       string
	userToken       string
	userTokenSecret string
}

// NewCredentials returns an empty Credentials.
func NewCredentials() Credentials {
	return Credentials{}
}

func (c Credentials) WithAppKey(appKey string) Credentials {
	c.appKey = appKey
	return c
}

func (c Credentials) WithAppSecret(appSecret string) Credentials {
	c.appSecret = appSecret
	return c
}

func (c Credentials) WithUserToken(token string) Credentials {
	c.userToken = token
	return c
}

func (c Credentials) WithUserTokenSecret(tokenSecret string) Credentials {
	c.userTokenSecret = tokenSecret
	return c
}

// Validate reports the first missing field, checked in the order app key,
// app secret, user token, user token secret.
func (c Credentials) Validate() error {
	_, err := c.ready()
	return err
}

// ready is the only way to obtain a Token, so nothing can be signed with
// incomplete credentials.
func (c Credentials) ready() (Token, error) {
	switch {
	case c.appKey == "":
		return Token{}, &MissingCredentialError{Field: FieldAppKey}
	case c.appSecret == "":
		return Token{}, &MissingCredentialError{Field: FieldAppSecret}
	case c.userToken == "":
		return Token{}, &MissingCredentialError{Field: FieldUserToken}
	case c.userTokenSecret == "":
		return Token{}, &MissingCredentialError{Field: FieldUserTokenSecret}
	}
	return Token{creds: c}, nil
}

// Token is a validated, complete set of credentials handed to a Signer.
type Token struct {
	creds Credentials
}

func (t Token) AppKey() string          { return t.creds.appKey }
func (t Token) AppSecret() string       { return t.creds.appSecret }
func (t Token) UserToken() string       { return t.creds.userToken }
func (t Token) UserTokenSecret() string { return t.creds.userTokenSecret }

// String hides the secrets so a Token is safe to log.
func (t Token) String() string {
	return fmt.Sprintf("Token{app_key=%s, user_token=%s}", redact(t.creds.appKey), redact(t.creds.userToken))
}

func redact(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
