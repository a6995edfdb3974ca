package portschema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Direction is the flow direction of a Port.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// DataType is the declared type of a port's value.
type DataType string

const (
	DataTypeString  DataType = "string"
	DataTypeInteger DataType = "integer"
	DataTypeNumber  DataType = "number"
	DataTypeBoolean DataType = "boolean"
	DataTypeObject  DataType = "object"
	DataTypeArray   DataType = "array"
	DataTypeAny     DataType = "any"
)

// Port is a named, typed endpoint on a node for producing or consuming a
// value.
type Port struct {
	Name      string
	Direction Direction
	DataType  DataType
	Required  bool
	Default   interface{}
}

// Compatible reports whether a value may flow from a port of dataType
// `producer` into a port of dataType `consumer`: types must be equal, or
// either side must be `any`.
func Compatible(producer, consumer DataType) bool {
	if producer == DataTypeAny || consumer == DataTypeAny {
		return true
	}
	return producer == consumer
}

// NodeSchema is the immutable, declarative description of a node type:
// its ports and the JSON schema its config map must validate against.
// Registered once per process; never mutated after registration.
type NodeSchema struct {
	NodeType     string
	DisplayName  string
	Category     string
	Version      string
	Inputs       []Port
	Outputs      []Port
	ConfigSchema map[string]interface{}
}

// InputPort looks up a declared input port by name.
func (s NodeSchema) InputPort(name string) (Port, bool) {
	for _, p := range s.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// OutputPort looks up a declared output port by name.
func (s NodeSchema) OutputPort(name string) (Port, bool) {
	for _, p := range s.Outputs {
		if p.Name == name {
			return p, true
		}
	}
	return Port{}, false
}

// ValidateConfig validates an opaque config map against the schema's
// ConfigSchema using JSON Schema. A nil/empty ConfigSchema always passes.
func (s NodeSchema) ValidateConfig(config map[string]interface{}) error {
	if len(s.ConfigSchema) == 0 {
		return nil
	}
	schemaLoader := gojsonschema.NewGoLoader(s.ConfigSchema)
	docLoader := gojsonschema.NewGoLoader(config)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("config schema validation error: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return &ConfigValidationError{Messages: msgs}
	}
	return nil
}

// ValidateInputs checks that every required input port is present in
// inputs and that present values are type-compatible with their port's
// declared dataType. Object/array/any are structural (not inspected
// further); primitives are checked exactly.
func (s NodeSchema) ValidateInputs(inputs map[string]interface{}) error {
	var missing []string
	var mismatched []string

	for _, p := range s.Inputs {
		v, present := inputs[p.Name]
		if !present {
			if p.Required && p.Default == nil {
				missing = append(missing, p.Name)
			}
			continue
		}
		if !typeMatches(p.DataType, v) {
			mismatched = append(mismatched, p.Name)
		}
	}

	if len(missing) > 0 || len(mismatched) > 0 {
		return &InputValidationError{MissingRequired: missing, TypeMismatched: mismatched}
	}
	return nil
}

func typeMatches(dt DataType, v interface{}) bool {
	switch dt {
	case DataTypeAny, DataTypeObject, DataTypeArray:
		return true
	case DataTypeString:
		_, ok := v.(string)
		return ok
	case DataTypeBoolean:
		_, ok := v.(bool)
		return ok
	case DataTypeInteger:
		switch v.(type) {
		case int, int32, int64:
			return true
		case float64:
			f := v.(float64)
			return f == float64(int64(f))
		default:
			return false
		}
	case DataTypeNumber:
		switch v.(type) {
		case int, int32, int64, float32, float64:
			return true
		default:
			return false
		}
	default:
		return true
	}
}
