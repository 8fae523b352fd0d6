package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/cdek/internal/constants"
	"github.com/fivetwenty-io/cdek/pkg/cdek"
)

// printResponse renders an API response in the selected output format.
func printResponse(out io.Writer, resp *cdek.Response) error {
	value, err := resp.JSON()
	if err != nil {
		return err
	}

	return printValue(out, value)
}

func printValue(out io.Writer, value interface{}) error {
	switch format := viper.GetString(KeyOutput); format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)

		return encoder.Encode(yamlValue(value))
	case constants.FormatTable, "":
		return renderTable(out, value)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownOutput, format)
	}
}

// yamlValue turns json.Number into plain YAML scalars without going through float64.
func yamlValue(value interface{}) interface{} {
	switch typed := value.(type) {
	case json.Number:
		tag := "!!int"
		if _, err := typed.Int64(); err != nil {
			tag = "!!float"
		}

		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: typed.String()}
	case map[string]interface{}:
		out := make(map[string]interface{}, len(typed))
		for key, element := range typed {
			out[key] = yamlValue(element)
		}

		return out
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, element := range typed {
			out[i] = yamlValue(element)
		}

		return out
	default:
		return value
	}
}

func renderTable(out io.Writer, value interface{}) error {
	table := tablewriter.NewWriter(out)

	switch typed := value.(type) {
	case map[string]interface{}:
		table.Header("Property", "Value")

		for _, key := range sortedKeys(typed) {
			_ = table.Append(key, cell(typed[key]))
		}
	case []interface{}:
		columns := tableColumns(typed)
		if len(columns) == 0 {
			_, err := fmt.Fprintf(out, "%d result(s)\n", len(typed))

			return err
		}

		header := make([]interface{}, len(columns))
		for i, column := range columns {
			header[i] = column
		}

		table.Header(header...)

		for _, element := range typed {
			row, _ := element.(map[string]interface{})

			cells := make([]interface{}, len(columns))
			for i, column := range columns {
				cells[i] = cell(row[column])
			}

			_ = table.Append(cells...)
		}
	default:
		_, err := fmt.Fprintln(out, cell(value))

		return err
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// tableColumns lists the scalar fields of the first row.
func tableColumns(rows []interface{}) []string {
	if len(rows) == 0 {
		return nil
	}

	first, ok := rows[0].(map[string]interface{})
	if !ok {
		return nil
	}

	var columns []string

	for _, key := range sortedKeys(first) {
		switch first[key].(type) {
		case map[string]interface{}, []interface{}:
			continue
		default:
			columns = append(columns, key)
		}
	}

	return columns
}

func cell(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return constants.NotAvailable
	case string:
		return typed
	case json.Number:
		return typed.String()
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(typed)
		if err != nil {
			return constants.NotAvailable
		}

		return string(data)
	default:
		return fmt.Sprint(typed)
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
