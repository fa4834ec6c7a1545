package sellsy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RequestSettings is the payload sent as the "do_in" envelope field.
type RequestSettings struct {
	Method string `json:"method" yaml:"method"`
	Params any    `json:"params" yaml:"params"`
}

// MarshalJSON encodes nil params as an empty JSON array, which is what the
// API receives for a call without parameters.
func (s RequestSettings) MarshalJSON() ([]byte, error) {
	params := s.Params
	if params == nil {
		params = []any{}
	}

	data, err := json.Marshal(struct {
		Method string `json:"method"`
		Params any    `json:"params"`
	}{Method: s.Method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingEnvelope, err)
	}

	return data, nil
}

// Answer is a successfully parsed answer of the Sellsy API.
type Answer struct {
	// Status is the "status" member, empty when absent or not a string.
	Status string
	// Response is the raw "response" member, nil when absent.
	Response json.RawMessage
	// Error is the raw "error" member, nil when absent.
	Error json.RawMessage

	body []byte
}

// ParseAnswer parses a raw answer body. The body must be valid JSON; when it
// is a JSON object its status, response and error members are extracted.
func ParseAnswer(body []byte) (*Answer, error) {
	if !json.Valid(body) {
		return nil, ErrMalformedAnswer
	}

	answer := &Answer{body: bytes.Clone(body)}

	var members map[string]json.RawMessage

	err := json.Unmarshal(body, &members)
	if err != nil {
		// valid JSON but not an object
		return answer, nil //nolint:nilerr
	}

	if raw, ok := members["status"]; ok {
		var status string
		if json.Unmarshal(raw, &status) == nil {
			answer.Status = status
		}
	}

	answer.Response = members["response"]
	answer.Error = members["error"]

	return answer, nil
}

// Body returns the raw answer body.
func (a *Answer) Body() []byte {
	return a.body
}

// Decode unmarshals the whole answer into v.
func (a *Answer) Decode(v any) error {
	err := json.Unmarshal(a.body, v)
	if err != nil {
		return fmt.Errorf("decoding answer: %w", err)
	}

	return nil
}

// DecodeResponse unmarshals the "response" member into v.
func (a *Answer) DecodeResponse(v any) error {
	if a.Response == nil {
		return fmt.Errorf("%w: no response member", ErrMalformedAnswer)
	}

	err := json.Unmarshal(a.Response, v)
	if err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// MarshalJSON returns the raw answer body unchanged.
func (a *Answer) MarshalJSON() ([]byte, error) {
	if a.body == nil {
		return []byte("null"), nil
	}

	return a.body, nil
}
