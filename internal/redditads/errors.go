package redditads

import "fmt"

// AuthError reports a failed token exchange. The response body is kept
// verbatim for diagnosis.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token exchange failed with status %d: %s", e.StatusCode, e.Body)
}

// RequestError reports a non-2xx response from a data endpoint.
type RequestError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.Path, e.StatusCode, e.Body)
}

// MalformedResponseError reports a 2xx response whose body is missing the
// expected JSON structure.
type MalformedResponseError struct {
	Path   string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s", e.Path, e.Reason)
}
