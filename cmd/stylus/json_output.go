package main

import (
	"encoding/json"
	"io"
)

// writeJSON emits v as indented JSON, the machine-readable counterpart to
// the table renderers behind every --json flag.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
