package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"partsimport/internal"
)

// LoadSnapshot reads a snapshot by input type: "json" is a file path ("-"
// for stdin), "json_inline" is the document itself.
func LoadSnapshot(inputType string, input string) (internal.RawScrapeSnapshot, error) {
	switch inputType {
	case "json":
		if input == "-" {
			return DecodeSnapshot(os.Stdin)
		}
		f, err := os.Open(input)
		if err != nil {
			return internal.RawScrapeSnapshot{}, err
		}
		defer f.Close()
		return DecodeSnapshot(f)
	case "json_inline":
		return DecodeSnapshot(strings.NewReader(input))
	default:
		return internal.RawScrapeSnapshot{}, fmt.Errorf("unsupported input type: %s", inputType)
	}
}

func DecodeSnapshot(r io.Reader) (internal.RawScrapeSnapshot, error) {
	var snap internal.RawScrapeSnapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&snap); err != nil {
		return internal.RawScrapeSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
