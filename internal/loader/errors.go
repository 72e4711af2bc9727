package loader

import "fmt"

// LoadError reports that a registry document could not be obtained as a mapping.
type LoadError struct {
	Path   string
	Reason string
	Stderr string // fallback interpreter output, if any
	Err    error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := fmt.Sprintf("load %s: %s", e.Path, e.Reason)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
