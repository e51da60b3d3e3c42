package memory

import "fmt"

// RequestError reports a request that never succeeded: either the transport
// failed outright or the server answered with a non-2xx status. Body holds
// the server's response text verbatim when one was available.
type RequestError struct {
	Op         string
	StatusCode int // zero when the request never reached the server
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Body)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError reports a successful response whose body did not match the
// expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
