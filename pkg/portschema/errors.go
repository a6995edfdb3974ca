package portschema

import "strings"

// ConfigValidationError reports one or more JSON-schema violations found
// in a node's config map.
type ConfigValidationError struct {
	Messages []string
}

func (e *ConfigValidationError) Error() string {
	return "config validation failed: " + strings.Join(e.Messages, "; ")
}

// InputValidationError reports missing required inputs and/or inputs whose
// value does not match the declared port dataType.
type InputValidationError struct {
	MissingRequired []string
	TypeMismatched  []string
}

func (e *InputValidationError) Error() string {
	var parts []string
	if len(e.MissingRequired) > 0 {
		parts = append(parts, "missing required inputs: "+strings.Join(e.MissingRequired, ", "))
	}
	if len(e.TypeMismatched) > 0 {
		parts = append(parts, "type-mismatched inputs: "+strings.Join(e.TypeMismatched, ", "))
	}
	return strings.Join(parts, "; ")
}
