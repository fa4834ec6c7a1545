package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

// paramFlags holds the parameter flags shared by call and collection.
type paramFlags struct {
	pairs    []string
	jsonText string
	file     string
}

func (f *paramFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.pairs, "param", "p", nil,
		`parameter as key=value, repeatable. Dotted keys nest ("search.contains=acme") `+
			`and values that parse as JSON are sent decoded`)
	cmd.Flags().StringVar(&f.jsonText, "params-json", "", "parameters as a JSON object")
	cmd.Flags().StringVar(&f.file, "params-file", "", "file holding the parameters as a JSON or YAML object")
}

// build returns the call parameters, or nil when no parameter flag is set.
// --param pairs are applied over the --params-json or --params-file object.
func (f *paramFlags) build() (any, error) {
	if f.jsonText != "" && f.file != "" {
		return nil, constants.ErrConflictingParamArgs
	}

	var (
		params *sellsy.Params
		err    error
	)

	switch {
	case f.jsonText != "":
		params, err = parseParamsJSON([]byte(f.jsonText))
	case f.file != "":
		params, err = readParamsFile(f.file)
	}

	if err != nil {
		return nil, err
	}

	if params == nil && len(f.pairs) == 0 {
		return nil, nil
	}

	if params == nil {
		params = sellsy.NewParams()
	}

	for _, pair := range f.pairs {
		err := setParam(params, pair)
		if err != nil {
			return nil, err
		}
	}

	return params, nil
}

func readParamsFile(path string) (*sellsy.Params, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the user on purpose
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseParamsYAML(data)
	default:
		return parseParamsJSON(data)
	}
}

func parseParamsJSON(data []byte) (*sellsy.Params, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, constants.ErrParamsNotAnObject
	}

	params := sellsy.NewParams()

	err := params.UnmarshalJSON(data)
	if err != nil {
		return nil, err
	}

	return params, nil
}

// parseParamsYAML decodes a YAML mapping, keeping the key order of every
// nested mapping.
func parseParamsYAML(data []byte) (*sellsy.Params, error) {
	var document yaml.Node

	err := yaml.Unmarshal(data, &document)
	if err != nil {
		return nil, fmt.Errorf("decoding params: %w", err)
	}

	if document.Kind != yaml.DocumentNode || len(document.Content) != 1 ||
		document.Content[0].Kind != yaml.MappingNode {
		return nil, constants.ErrParamsNotAnObject
	}

	value, err := yamlValue(document.Content[0])
	if err != nil {
		return nil, err
	}

	params, _ := value.(*sellsy.Params)

	return params, nil
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		params := sellsy.NewParams()

		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := yamlValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}

			params.Set(node.Content[i].Value, value)
		}

		return params, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))

		for _, child := range node.Content {
			value, err := yamlValue(child)
			if err != nil {
				return nil, err
			}

			items = append(items, value)
		}

		return items, nil
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	default:
		var value any

		err := node.Decode(&value)
		if err != nil {
			return nil, fmt.Errorf("decoding params: %w", err)
		}

		return value, nil
	}
}

// setParam applies a key=value pair to params.
func setParam(params *sellsy.Params, pair string) error {
	key, raw, found := strings.Cut(pair, "=")
	if !found || key == "" {
		return fmt.Errorf("%w: %q", constants.ErrInvalidParamFormat, pair)
	}

	path := strings.Split(key, ".")
	for _, segment := range path {
		if segment == "" {
			return fmt.Errorf("%w: %q", constants.ErrInvalidParamFormat, pair)
		}
	}

	target := params

	for _, segment := range path[:len(path)-1] {
		existing, ok := target.Get(segment)

		nested, isParams := existing.(*sellsy.Params)
		if !ok || !isParams {
			nested = sellsy.NewParams()
			target.Set(segment, nested)
		}

		target = nested
	}

	target.Set(path[len(path)-1], paramValue(raw))

	return nil
}

// paramValue decodes raw when it is JSON and keeps it as a string otherwise.
// Objects, including those nested in arrays, are decoded as ordered params.
func paramValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !json.Valid([]byte(trimmed)) {
		return raw
	}

	value, err := sellsy.DecodeValue([]byte(trimmed))
	if err != nil {
		return raw
	}

	return value
}
