package diagfmt

import (
	"fmt"
	"io"

	"quill/internal/diag"
)

// Plain writes one line per diagnostic:
//
//	ERROR [Parser] at (1, 5): unexpected token ';', expected identifier
func Plain(w io.Writer, diags []diag.Diagnostic) error {
	for _, d := range diags {
		if _, err := fmt.Fprintf(w, "%s [%s] at (%d, %d): %s\n",
			d.Severity, d.Stage(), d.Pos.Line, d.Pos.Col, d.Message); err != nil {
			return err
		}
	}
	return nil
}
