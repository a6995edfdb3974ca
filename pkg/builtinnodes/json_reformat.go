package builtinnodes

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
)

// JSONReformat converts structured input data into JSON, CSV or TSV text,
// the same three output types pkg/executor's format node supports.
type JSONReformat struct {
	outputType     string
	prettyPrint    bool
	includeHeaders bool
	delimiter      rune
}

func jsonReformatSchema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType:    "json_reformat",
		DisplayName: "Reformat",
		Category:    "transform",
		Version:     "1.0.0",
		Inputs:      []portschema.Port{{Name: "in", Direction: portschema.DirectionIn, DataType: portschema.DataTypeAny, Required: true}},
		Outputs:     []portschema.Port{{Name: "out", Direction: portschema.DirectionOut, DataType: portschema.DataTypeString}},
	}
}

func newJSONReformat(nodeID string, config map[string]interface{}) (node.Node, error) {
	outputType := "JSON"
	if v, ok := config["output_type"].(string); ok && v != "" {
		outputType = strings.ToUpper(v)
	}
	if outputType != "JSON" && outputType != "CSV" && outputType != "TSV" {
		return nil, fmt.Errorf("json_reformat node: invalid output_type %q (must be one of JSON, CSV, TSV)", outputType)
	}

	prettyPrint, _ := config["pretty_print"].(bool)

	includeHeaders := true
	if v, ok := config["include_headers"].(bool); ok {
		includeHeaders = v
	}

	delimiter := ','
	if d, ok := config["delimiter"].(string); ok && len(d) > 0 {
		delimiter = rune(d[0])
	}

	return &JSONReformat{
		outputType:     outputType,
		prettyPrint:    prettyPrint,
		includeHeaders: includeHeaders,
		delimiter:      delimiter,
	}, nil
}

func (j *JSONReformat) Schema() portschema.NodeSchema { return jsonReformatSchema() }

func (j *JSONReformat) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	return node.Timed(func() node.ExecutionResult {
		var out string
		var err error
		switch j.outputType {
		case "JSON":
			out, err = formatAsJSON(inputs["in"], j.prettyPrint)
		case "CSV":
			out, err = formatAsCSV(inputs["in"], j.delimiter, j.includeHeaders)
		case "TSV":
			out, err = formatAsCSV(inputs["in"], '\t', j.includeHeaders)
		}
		if err != nil {
			return node.ExecutionResult{Success: false, Error: err.Error()}
		}
		return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{"out": out}}
	})
}

func formatAsJSON(data interface{}, pretty bool) (string, error) {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(data, "", "  ")
	} else {
		b, err = json.Marshal(data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to format as JSON: %w", err)
	}
	return string(b), nil
}

func formatAsCSV(data interface{}, delimiter rune, includeHeaders bool) (string, error) {
	var records []map[string]interface{}
	switch v := data.(type) {
	case []interface{}:
		for _, item := range v {
			m, ok := item.(map[string]interface{})
			if !ok {
				return "", fmt.Errorf("CSV formatting requires an array of objects, got element of type %T", item)
			}
			records = append(records, m)
		}
	case map[string]interface{}:
		records = []map[string]interface{}{v}
	default:
		return "", fmt.Errorf("CSV formatting requires an array of objects or a single object, got %T", data)
	}
	if len(records) == 0 {
		return "", nil
	}

	headerSet := make(map[string]bool)
	for _, r := range records {
		for k := range r {
			headerSet[k] = true
		}
	}
	headers := make([]string, 0, len(headerSet))
	for k := range headerSet {
		headers = append(headers, k)
	}
	for i := 0; i < len(headers)-1; i++ {
		for k := i + 1; k < len(headers); k++ {
			if headers[i] > headers[k] {
				headers[i], headers[k] = headers[k], headers[i]
			}
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter
	if includeHeaders {
		if err := w.Write(headers); err != nil {
			return "", fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}
	for _, r := range records {
		row := make([]string, len(headers))
		for i, h := range headers {
			if v, ok := r[h]; ok && v != nil {
				row[i] = csvValue(v)
			}
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.String(), nil
}

func csvValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case int:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	}
}
