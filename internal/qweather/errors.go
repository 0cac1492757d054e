package qweather

import "fmt"

// CredentialError reports malformed signing inputs. It is never retried:
// a bad private key cannot self-correct, so the process should fail at
// startup rather than hammer the provider with unsignable requests.
type CredentialError struct {
	Reason string
	Err    error
}

func (e *CredentialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("qweather credentials: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("qweather credentials: %s", e.Reason)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}
