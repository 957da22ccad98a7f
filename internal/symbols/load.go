package symbols

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoSymbols is returned when a document has no symbols key at all.
var ErrNoSymbols = errors.New("symbols: document has no symbols list")

// rawRecord mirrors Record but keeps size undecoded so a single bad value
// does not fail the whole document.
type rawRecord struct {
	Path []string `json:"path" yaml:"path"`
	Obj  string   `json:"obj" yaml:"obj"`
	Sym  string   `json:"sym" yaml:"sym"`
	Type string   `json:"type" yaml:"type"`
	Size any      `json:"size" yaml:"size"`
}

type rawDocument struct {
	App     string       `json:"app" yaml:"app"`
	Symbols *[]rawRecord `json:"symbols" yaml:"symbols"`
}

// Load reads a symbol document from path. Files ending in .yml or .yaml are
// parsed as YAML, everything else as JSON.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading symbols %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON decodes a JSON symbol document.
func ParseJSON(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw rawDocument
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing symbols json: %w", err)
	}
	return raw.document()
}

// ParseYAML decodes a YAML symbol document.
func ParseYAML(data []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing symbols yaml: %w", err)
	}
	return raw.document()
}

func (raw rawDocument) document() (*Document, error) {
	if raw.Symbols == nil {
		return nil, ErrNoSymbols
	}

	doc := &Document{
		App:     raw.App,
		Symbols: make([]Record, 0, len(*raw.Symbols)),
	}
	for i, r := range *raw.Symbols {
		size, err := parseSize(r.Size)
		if err != nil {
			doc.Malformed = append(doc.Malformed, Malformed{Index: i, Sym: r.Sym, Reason: err.Error()})
			continue
		}
		doc.Symbols = append(doc.Symbols, Record{
			Path:  r.Path,
			Obj:   r.Obj,
			Sym:   r.Sym,
			Type:  Type(r.Type),
			Size:  size,
			Index: i,
		})
	}
	return doc, nil
}

// parseSize accepts whatever the JSON or YAML decoder produced for a size
// field. Only integral values are accepted; the sign is checked later by the
// tree builder.
func parseSize(v any) (int64, error) {
	switch s := v.(type) {
	case nil:
		return 0, errors.New("size is missing")
	case json.Number:
		n, err := s.Int64()
		if err != nil {
			return 0, fmt.Errorf("size %q is not an integer", s.String())
		}
		return n, nil
	case int:
		return int64(s), nil
	case int64:
		return s, nil
	case uint64:
		if s > math.MaxInt64 {
			return 0, fmt.Errorf("size %d overflows", s)
		}
		return int64(s), nil
	case float64:
		if s != math.Trunc(s) || math.IsInf(s, 0) {
			return 0, fmt.Errorf("size %v is not an integer", s)
		}
		// 2^63 is exactly representable; anything at or beyond it is not an int64.
		if s >= math.MaxInt64 || s < math.MinInt64 {
			return 0, fmt.Errorf("size %v overflows", s)
		}
		return int64(s), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("size %q is not numeric", s)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("size has unsupported type %T", v)
	}
}
