package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// ReadTrace decodes a JSON trace from r.
//
// The input must be a JSON object with at least "context_limit",
// "total_tokens", and a "components" array:
//
//	{
//	  "context_limit": 128000,
//	  "total_tokens": 14350,
//	  "components": [
//	    {"id": "sys", "type": "system_prompt", "token_count": 2000}
//	  ]
//	}
//
// ReadTrace returns an error if the JSON is malformed or if the decoded
// trace fails validation (duplicate or empty component IDs, negative
// token counts). The returned trace is independent of r and can be
// modified safely after ReadTrace returns. ReadTrace does not close r.
func ReadTrace(r io.Reader) (*ContextTrace, error) {
	var t ContextTrace
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// ImportFile reads a JSON trace file at path.
//
// ImportFile opens the file, decodes it using [ReadTrace], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportFile(path string) (*ContextTrace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTrace(f)
}

// WriteTrace encodes the trace as indented JSON and writes it to w.
// The output can be re-imported with [ReadTrace] for round-trip processing.
func WriteTrace(t *ContextTrace, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes the trace to a JSON file at path.
func ExportFile(t *ContextTrace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteTrace(t, f)
}

// Marshal serializes the trace to compact JSON. This is the canonical
// byte form used for content-addressed cache keys.
func Marshal(t *ContextTrace) ([]byte, error) {
	return json.Marshal(t)
}

// EnsureIDs fills in missing identifiers on the trace in place.
//
// Components without an ID get "<type>_<8 hex chars>"; a trace without a
// session ID gets a fresh 12-character session identifier. Existing IDs
// are never changed, so calling EnsureIDs repeatedly is safe.
func EnsureIDs(t *ContextTrace) {
	for i := range t.Components {
		if t.Components[i].ID == "" {
			t.Components[i].ID = fmt.Sprintf("%s_%s", t.Components[i].Type, shortID(8))
		}
	}
	if t.SessionID == "" {
		t.SessionID = shortID(12)
	}
}

// shortID returns the first n hex characters of a random UUID.
func shortID(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
