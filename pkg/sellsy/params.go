package sellsy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Params is an insertion-ordered parameter mapping. Keys are encoded in the
// order they were first set.
type Params struct {
	values *orderedmap.OrderedMap[string, any]
}

// NewParams creates an empty parameter mapping.
func NewParams() *Params {
	return &Params{values: orderedmap.New[string, any]()}
}

// Set stores value under key and returns p for chaining. Setting an existing
// key keeps its original position.
func (p *Params) Set(key string, value any) *Params {
	p.init()
	p.values.Set(key, value)

	return p
}

// Get returns the value stored under key.
func (p *Params) Get(key string) (any, bool) {
	if p.values == nil {
		return nil, false
	}

	return p.values.Get(key)
}

// Delete removes key.
func (p *Params) Delete(key string) {
	if p.values != nil {
		p.values.Delete(key)
	}
}

// Len returns the number of keys.
func (p *Params) Len() int {
	if p.values == nil {
		return 0
	}

	return p.values.Len()
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	keys := make([]string, 0, p.Len())
	if p.values == nil {
		return keys
	}

	for pair := p.values.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (p *Params) MarshalJSON() ([]byte, error) {
	if p.Len() == 0 {
		return []byte("{}"), nil
	}

	data, err := p.values.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding params: %w", err)
	}

	return data, nil
}

// UnmarshalJSON decodes a JSON object. Nested objects become *Params, so key
// order is kept at every level.
func (p *Params) UnmarshalJSON(data []byte) error {
	value, err := DecodeValue(data)
	if err != nil {
		return err
	}

	params, ok := value.(*Params)
	if !ok {
		return fmt.Errorf("decoding params: %w", ErrParamsNotObject)
	}

	p.values = params.values

	return nil
}

// DecodeValue decodes any JSON value. Objects are decoded as *Params, arrays
// as []any and scalars the way encoding/json decodes them into an interface.
func DecodeValue(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))

	value, err := decodeValue(decoder)
	if err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}

	_, err = decoder.Token()
	if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding params: %w", ErrInvalidParamsJSON)
	}

	return value, nil
}

func decodeValue(decoder *json.Decoder) (any, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := token.(json.Delim)
	if !ok {
		return token, nil
	}

	switch delim {
	case '{':
		params := NewParams()

		for decoder.More() {
			keyToken, err := decoder.Token()
			if err != nil {
				return nil, err
			}

			key, _ := keyToken.(string)

			value, err := decodeValue(decoder)
			if err != nil {
				return nil, err
			}

			params.Set(key, value)
		}

		_, err = decoder.Token()

		return params, err
	case '[':
		items := []any{}

		for decoder.More() {
			value, err := decodeValue(decoder)
			if err != nil {
				return nil, err
			}

			items = append(items, value)
		}

		_, err = decoder.Token()

		return items, err
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidParamsJSON, delim)
	}
}

func (p *Params) init() {
	if p.values == nil {
		p.values = orderedmap.New[string, any]()
	}
}
