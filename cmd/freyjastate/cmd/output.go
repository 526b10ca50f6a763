package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/freyjastate/pkg/session"
)

// outputState prints state as a document in the given format
func outputState(w io.Writer, state *session.State, format string) error {
	doc := session.FromState(state)

	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "cbor":
		return cbor.NewEncoder(w).Encode(doc)
	default:
		return fmt.Errorf("unknown output format %q (want yaml, json or cbor)", format)
	}
}
