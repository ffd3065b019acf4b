package providerchain

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

var (
	ErrUnknownProvider    = errors.New("provider is not supported")
	ErrMissingCredentials = errors.New("no credentials in response")
	ErrUnmarshalSecret    = errors.New("cannot unmarshal secret")
	ErrNoStoredCredential = errors.New("no credential stored for user")
)

// ProviderError wraps a failure from a specific provider in the chain,
// keeping the original cause and the identity of the failing step so a
// multi-hop failure can be attributed.
type ProviderError struct {
	Provider string
	RoleARN  string
	Err      error
}

func (e *ProviderError) Error() string {
	target := e.Provider
	if e.RoleARN != "" {
		target = fmt.Sprintf("%s role %s", e.Provider, e.RoleARN)
	}
	var ae smithy.APIError
	if errors.As(e.Err, &ae) {
		return fmt.Sprintf("%s failed: %s: %s", target, ae.ErrorCode(), ae.ErrorMessage())
	}
	return fmt.Sprintf("%s failed: %v", target, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
