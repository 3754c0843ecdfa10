package twitter

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
)

func fullCredentials() Credentials {
	return NewCredentials().
		WithAppKey("app-key").
		WithAppSecret("app-secret").
		WithUserToken("user-token").
		WithUserTokenSecret("user-token-secret")
}

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name      string
		creds     Credentials
		wantField string
	}{
		{
			name:      "empty",
			creds:     NewCredentials(),
			wantField: FieldAppKey,
		},
		{
			name:      "missing app key only",
			creds:     fullCredentials().WithAppKey(""),
			wantField: FieldAppKey,
		},
		{
			name:      "missing app secret",
			creds:     fullCredentials().WithAppSecret(""),
			wantField: FieldAppSecret,
		},
		{
			name:      "missing user token",
			creds:     fullCredentials().WithUserToken(""),
			wantField: FieldUserToken,
		},
		{
			name:      "missing user token secret",
			creds:     fullCredentials().WithUserTokenSecret(""),
			wantField: FieldUserTokenSecret,
		},
		{
			name:      "app secret reported before user token",
			creds:     NewCredentials().WithAppKey("k").WithUserTokenSecret("s"),
			wantField: FieldAppSecret,
		},
		{
			name:  "complete",
			creds: fullCredentials(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var missing *MissingCredentialError
			if !stderrors.As(err, &missing) {
				t.Fatalf("Validate() error = %v, want *MissingCredentialError", err)
			}
			if missing.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", missing.Field, tt.wantField)
			}
			if !errors.IsType(err, errors.TypeCredential) {
				t.Error("expected credential error category")
			}
		})
	}
}

func TestCredentialsSettersReturnCopies(t *testing.T) {
	base := NewCredentials().WithAppKey("first")
	changed := base.WithAppKey("second")

	if base.appKey != "first" {
		t.Errorf("original mutated: appKey = %q", base.appKey)
	}
	if changed.appKey != "second" {
		t.Errorf("appKey = %q, want %q", changed.appKey, "second")
	}
}

func TestTokenAccessorsAndString(t *testing.T) {
	token, err := fullCredentials().ready()
	if err != nil {
		t.Fatalf("ready() error = %v", err)
	}

	if token.AppKey() != "app-key" || token.AppSecret() != "app-secret" ||
		token.UserToken() != "user-token" || token.UserTokenSecret() != "user-token-secret" {
		t.Errorf("unexpected token contents: %#v", token)
	}

	s := token.String()
	if strings.Contains(s, "app-secret") || strings.Contains(s, "user-token-secret") {
		t.Errorf("String() leaks secrets: %s", s)
	}
}
