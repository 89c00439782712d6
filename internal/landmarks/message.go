// Package landmarks turns inbound detection messages into display text.
//
// A message is any JSON document. Only the "landmarks" member of a
// top-level object is read, and its value is shown verbatim, indented
// with two spaces. Nothing about its shape is validated.
package landmarks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Indent is the per-level indentation of rendered text.
const Indent = "  "

// ErrMalformed is returned for messages that are not valid JSON, or that
// have no members to read.
var ErrMalformed = errors.New("landmarks: malformed message")

// Extract returns the raw "landmarks" value of data. It returns nil when
// data is valid JSON without such a member.
func Extract(data []byte) (json.RawMessage, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch bytes.TrimSpace(doc)[0] {
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(doc, &fields); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return fields["landmarks"], nil
	case 'n':
		return nil, fmt.Errorf("%w: null message", ErrMalformed)
	default:
		return nil, nil
	}
}

// Format pretty-prints a raw JSON value. An absent value renders as "".
func Format(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", Indent); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return buf.String(), nil
}

// Render extracts and formats the landmarks of one inbound message.
func Render(data []byte) (string, error) {
	raw, err := Extract(data)
	if err != nil {
		return "", err
	}
	return Format(raw)
}
