package registry

import "fmt"

// SchemaError reports the first rule a registry document violates.
type SchemaError struct {
	Source  string // registry file name used as message prefix
	Index   int    // entry index, -1 for document-level rules
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}
