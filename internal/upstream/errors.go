package upstream

import "fmt"

// HTTPError reports a non-2xx response from a mirror.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.URL, e.StatusCode)
}

// NetworkError reports a transport-level failure (timeout, refused
// connection, DNS).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("upstream %s unreachable: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a 2xx response whose body was not valid JSON.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("upstream %s returned malformed JSON: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
