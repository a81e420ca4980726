package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var errEmptyInput = errors.New("input is empty")

// readObject decodes a JSON or YAML object from path, or from stdin when
// path is "-". The format is taken from the extension; stdin and unknown
// extensions are read as JSON.
func readObject(path string, stdin io.Reader) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errEmptyInput
	}

	var out map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if out == nil {
		return nil, fmt.Errorf("decode %s: not an object", path)
	}
	return out, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
