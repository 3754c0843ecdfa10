package twitter

import (
	"fmt"

	"github.com/NethermindEth/twitterbot/pkg/utils/errors"
)

// APIError is returned when the API answers with a non-200 status. Code and
// Message come from the first entry of the error payload.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitter API error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
}

// ErrorType implements errors.Typed.
func (e *APIError) ErrorType() errors.ErrorType {
	return errors.TypeAPI
}

func newAPIError(statusCode int, resp *ErrorResponse) *APIError {
	first := resp.Errors[0]
	return &APIError{
		StatusCode: statusCode,
		Code:       first.Code,
		Message:    first.Message,
		Errors:     resp.Errors,
	}
}
