package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/sellsy-client/internal/constants"
	"github.com/fivetwenty-io/sellsy-client/pkg/sellsy"
)

// outputFormat returns the format selected with --output or the config file.
func outputFormat() string {
	return viper.GetString(keyOutput)
}

// render writes data as JSON or YAML. Any other format falls back to table.
func render(w io.Writer, format string, data any, table func(w io.Writer) error) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return nil
	default:
		return table(w)
	}
}

func renderPropertyTable(w io.Writer, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderAnswer prints the raw answer body as indented JSON, as YAML with the
// key order of the body, or the response members as a property table.
func renderAnswer(w io.Writer, format string, answer *sellsy.Answer) error {
	switch format {
	case constants.FormatJSON:
		var buf bytes.Buffer

		err := json.Indent(&buf, answer.Body(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to indent answer: %w", err)
		}

		buf.WriteByte('\n')

		_, err = w.Write(buf.Bytes())
		if err != nil {
			return fmt.Errorf("failed to write answer: %w", err)
		}

		return nil
	case constants.FormatYAML:
		var node yaml.Node

		err := yaml.Unmarshal(answer.Body(), &node)
		if err != nil {
			return fmt.Errorf("failed to convert answer to YAML: %w", err)
		}

		clearStyle(&node)

		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer func() { _ = encoder.Close() }()

		err = encoder.Encode(&node)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return nil
	default:
		return renderPropertyTable(w, answerRows(answer))
	}
}

// clearStyle drops the flow style JSON documents decode with so the YAML
// encoder emits block style.
func clearStyle(node *yaml.Node) {
	node.Style = 0

	for _, child := range node.Content {
		clearStyle(child)
	}
}

func answerRows(answer *sellsy.Answer) [][]string {
	response := bytes.TrimSpace(answer.Response)

	if len(response) > 0 && response[0] == '{' {
		var params sellsy.Params
		if params.UnmarshalJSON(response) == nil {
			rows := make([][]string, 0, params.Len())

			for _, key := range params.Keys() {
				value, _ := params.Get(key)
				rows = append(rows, []string{key, formatValue(value)})
			}

			return rows
		}
	}

	if len(response) == 0 {
		return [][]string{{"status", answer.Status}}
	}

	return [][]string{{"response", compactJSON(response)}}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return constants.NotAvailable
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(data)
	}
}

func compactJSON(data []byte) string {
	var buf bytes.Buffer
	if json.Compact(&buf, data) != nil {
		return string(data)
	}

	return buf.String()
}
