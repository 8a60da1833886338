package citas

import (
	"bytes"
	"fmt"
	"regexp"
)

// ParseError reports a malformed booking feed: a broken callback envelope or
// invalid inner JSON. Callers must treat it as "availability unknown", not
// as zero availability.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing booking feed: %s: %v", e.Reason, e.Err)
	}
	return "parsing booking feed: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// callbackEnvelope matches `<identifier>( ... )` with an optional trailing
// semicolon. The inner payload is capture group 1.
var callbackEnvelope = regexp.MustCompile(`(?s)^\s*[A-Za-z_$][\w$]*\s*\((.*)\)\s*;?\s*$`)

// UnwrapJSONP strips the named-callback envelope from a JSONP response and
// returns the inner JSON. Payloads that are already bare JSON pass through
// unchanged. This is a narrow textual adapter, not a JavaScript evaluator.
func UnwrapJSONP(body []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return trimmed, nil
	}
	m := callbackEnvelope.FindSubmatch(trimmed)
	if m == nil {
		return nil, &ParseError{Reason: "response is not a callback invocation"}
	}
	return m[1], nil
}
