package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes the content of one catalog file. The top-level keys are
// language codes; each must hold a nested object of messages.
type Parser interface {
	Parse(ctx context.Context, content string) (map[string]map[string]any, error)

	// SupportsFileExtension accepts the extension with or without the dot.
	SupportsFileExtension(ext string) bool
}

type JSONParser struct{}

func NewJSONParser() *JSONParser { return &JSONParser{} }

func (p *JSONParser) Parse(ctx context.Context, content string) (map[string]map[string]any, error) {
	return parseCatalog(ctx, content, json.Unmarshal, ErrJSONParsingCancelled, ErrFailedToParseJSON)
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return hasExtension(ext, "json")
}

// YAMLParser reads the format of the embedded catalogs.
type YAMLParser struct{}

func NewYAMLParser() *YAMLParser { return &YAMLParser{} }

func (p *YAMLParser) Parse(ctx context.Context, content string) (map[string]map[string]any, error) {
	return parseCatalog(ctx, content, yaml.Unmarshal, ErrYAMLParsingCancelled, ErrFailedToParseYAML)
}

func (p *YAMLParser) SupportsFileExtension(ext string) bool {
	return hasExtension(ext, "yaml", "yml")
}

// NewParserForFile picks a parser by extension. It returns nil for files
// that are not catalogs.
func NewParserForFile(filename string) Parser {
	for _, p := range []Parser{NewYAMLParser(), NewJSONParser()} {
		if p.SupportsFileExtension(filepath.Ext(filename)) {
			return p
		}
	}
	return nil
}

func parseCatalog(ctx context.Context, content string, unmarshal func([]byte, any) error, errCancelled, errParse error) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(errCancelled, err)
	}

	var data map[string]any
	if err := unmarshal([]byte(content), &data); err != nil {
		return nil, errors.Join(errParse, err)
	}
	if len(data) == 0 {
		return nil, errors.Join(errParse, errors.New("no languages found"))
	}

	out := make(map[string]map[string]any, len(data))
	for lang, v := range data {
		messages, ok := v.(map[string]any)
		if !ok {
			return nil, errors.Join(errParse, fmt.Errorf("language %q: expected an object, got %T", lang, v))
		}
		out[lang] = messages
	}
	return out, nil
}

func hasExtension(ext string, accepted ...string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return slices.Contains(accepted, ext)
}
