package delegation

import "fmt"

// CodecError reports malformed transport data: input that is not URL-safe
// base64, bytes that are not valid JSON, or JSON missing required delegation
// fields. Codec failures are data-integrity problems and are never retried.
type CodecError struct {
	Reason string
	Err    error
}

func (e *CodecError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("delegation codec: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("delegation codec: %s", e.Reason)
}

func (e *CodecError) Unwrap() error { return e.Err }

// InvalidScopeError reports caller-supplied scope parameters that violate
// the factory's invariants. Rejected before any network call.
type InvalidScopeError struct {
	Reason string
}

func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("invalid spending scope: %s", e.Reason)
}
