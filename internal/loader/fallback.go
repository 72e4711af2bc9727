package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/taigrr/list-examples/internal/types"
)

// RubyScript parses ARGV[0] with Psych and prints it as JSON.
const RubyScript = "require 'yaml'; require 'json'; " +
	"data = YAML.load_file(ARGV[0]); " +
	"puts JSON.generate(data)"

// Fallback runs an external interpreter that prints the document as JSON.
// The document path is appended as the last argument.
type Fallback struct {
	Interpreter string
	Args        []string
	Timeout     time.Duration // zero waits until the process exits
}

// NewRubyFallback returns a Fallback that uses Ruby's standard YAML library.
func NewRubyFallback(interpreter string) *Fallback {
	if interpreter == "" {
		interpreter = "ruby"
	}
	return &Fallback{
		Interpreter: interpreter,
		Args:        []string{"-e", RubyScript},
	}
}

// Load runs the interpreter against path and decodes its standard output.
func (f *Fallback) Load(ctx context.Context, path string) (types.RawDocument, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, f.Args...), path)
	cmd := exec.CommandContext(ctx, f.Interpreter, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		reason := "failed to parse YAML via " + f.Interpreter
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			reason = "failed to run " + f.Interpreter
		}
		return nil, &LoadError{
			Path:   path,
			Reason: reason,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	var root any
	if err := json.Unmarshal(stdout.Bytes(), &root); err != nil {
		return nil, &LoadError{Path: path, Reason: "interpreter output is not valid JSON", Err: err}
	}

	doc, err := asDocument(root)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: reasonNotMapping}
	}
	return doc, nil
}
