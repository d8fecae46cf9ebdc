package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed builtin/*.json
var builtinFS embed.FS

// Parse decodes, normalizes and validates a dataset document.
func Parse(raw []byte, source string) (*Dataset, error) {
	if err := validateDocument(raw); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}

	var d Dataset
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	if d.ID == "" {
		d.ID = strings.TrimSuffix(path.Base(source), ".json")
	}
	d.normalize()

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile reads and parses a dataset from disk.
func LoadFile(p string) (*Dataset, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(raw, p)
}

// Builtin loads one of the embedded datasets by id.
func Builtin(id string) (*Dataset, error) {
	raw, err := builtinFS.ReadFile("builtin/" + id + ".json")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, id)
		}
		return nil, fmt.Errorf("read builtin dataset: %w", err)
	}
	return Parse(raw, id+".json")
}

// BuiltinIDs lists the embedded dataset ids in lexical order.
func BuiltinIDs() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}
	sort.Strings(ids)
	return ids
}

// Builtins loads every embedded dataset.
func Builtins() ([]*Dataset, error) {
	ids := BuiltinIDs()
	out := make([]*Dataset, 0, len(ids))
	for _, id := range ids {
		d, err := Builtin(id)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Resolve treats ref as a file path when it names an existing file or ends
// in .json, and as a built-in id otherwise.
func Resolve(ref string) (*Dataset, error) {
	if strings.HasSuffix(ref, ".json") {
		return LoadFile(ref)
	}
	if st, err := os.Stat(ref); err == nil && !st.IsDir() {
		return LoadFile(ref)
	}
	return Builtin(ref)
}
