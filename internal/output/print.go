package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Printer renders response envelopes in either human or JSON mode.
type Printer struct {
	registry *Registry
	stdout   io.Writer
	stderr   io.Writer
	json     bool
}

// NewPrinter creates a printer. JSON mode bypasses the registry and emits
// the envelope itself.
func NewPrinter(jsonMode bool) *Printer {
	return &Printer{
		registry: DefaultRegistry(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		json:     jsonMode,
	}
}

// Print renders a response and reports whether it was a success, so the
// caller can pick the exit code.
func (p *Printer) Print(resp *Response) bool {
	if p.json {
		p.printJSON(resp)
	} else {
		p.printHuman(resp)
	}
	return !resp.IsError()
}

func (p *Printer) printJSON(resp *Response) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		fmt.Fprintf(p.stderr, "Error: failed to encode response: %v\n", err)
		return
	}
	fmt.Fprintln(p.stdout, string(data))
}

// printHuman sends errors to stderr as "Error: message" with an indented
// details line, and success payloads through the formatter registry.
func (p *Printer) printHuman(resp *Response) {
	if resp.IsError() {
		fmt.Fprintf(p.stderr, "Error: %s\n", resp.Message)
		if resp.Error != nil && resp.Error.Details != "" {
			fmt.Fprintf(p.stderr, "  %s\n", resp.Error.Details)
		}
		return
	}

	if resp.Payload == nil {
		fmt.Fprintln(p.stdout, resp.Message)
		return
	}
	p.registry.Format(p.stdout, resp.PayloadKind, resp.Payload, resp.Message)
}
