package googlebooks

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/biblio/pkg/books"
)

// NoResponseMessage is the LookupError message for an empty payload.
const NoResponseMessage = "Google api did not respond."

// Payload is a decoded volumes response: top-level keys mapped to their raw
// JSON values. An empty Payload means the upstream sent nothing usable.
type Payload map[string]json.RawMessage

// DecodePayload parses body into a Payload.
// Empty bodies, malformed JSON and non-object documents all decode to an
// empty Payload.
func DecodePayload(body []byte) Payload {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil || p == nil {
		return Payload{}
	}
	return p
}

// Validate checks a payload before normalization.
//
// It returns a LookupError when the payload is empty or carries an "error"
// field, and nil otherwise. It does not check for results; [Normalize]
// handles an empty result list.
func Validate(p Payload) *books.LookupError {
	if len(p) == 0 {
		return &books.LookupError{Message: NoResponseMessage}
	}
	raw, ok := p["error"]
	if !ok {
		return nil
	}
	return errorField(raw)
}

// errorField interprets the value of the "error" key. Plain strings are used
// verbatim; Google's {"code": N, "message": "..."} object contributes both
// fields; anything else is reported as its JSON text.
func errorField(raw json.RawMessage) *books.LookupError {
	raw = bytes.TrimSpace(raw)

	var msg string
	if len(raw) > 0 && raw[0] == '"' && json.Unmarshal(raw, &msg) == nil {
		return &books.LookupError{Message: msg}
	}

	var obj struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && (obj.Code != 0 || obj.Message != "") {
		return &books.LookupError{Code: obj.Code, Message: obj.Message}
	}

	return &books.LookupError{Message: string(raw)}
}
