package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
)

// TranslationAdapter interface defines how translations are loaded
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter is a simple adapter that uses an in-memory map as the translation source
type MapAdapter struct {
	Data map[string]map[string]any
}

// Load implements the TranslationAdapter interface
func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single translation file from disk.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter creates a new FileAdapter instance. A nil parser selects
// one by file extension.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	if parser == nil {
		parser = NewParserForFile(path)
	}
	return &FileAdapter{parser: parser, path: path}
}

// Load implements the TranslationAdapter interface
func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingFileCancelled, err)
	}
	if a.parser == nil {
		return nil, errors.Join(ErrUnsupportedFile, fmt.Errorf("%q", a.path))
	}

	content, err := os.ReadFile(a.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	translations, err := a.parser.Parse(ctx, string(content))
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%q", a.path), err)
	}
	return translations, nil
}

// FSAdapter loads every JSON and YAML file of a directory in a file system,
// such as an embed.FS or os.DirFS. Files are merged in name order; nested
// keys of later files override earlier ones.
type FSAdapter struct {
	fsys fs.FS
	dir  string
}

func NewFSAdapter(fsys fs.FS, dir string) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	return &FSAdapter{fsys: fsys, dir: dir}
}

// Load implements the TranslationAdapter interface
func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingTranslationsCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && NewParserForFile(entry.Name()) != nil {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, errors.Join(ErrNoTranslationFiles, fmt.Errorf("directory %q", a.dir))
	}
	sort.Strings(names)

	all := make(map[string]map[string]any)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingFileCancelled, err)
		}

		filePath := path.Join(a.dir, name)
		content, err := fs.ReadFile(a.fsys, filePath)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}

		translations, err := NewParserForFile(name).Parse(ctx, string(content))
		if err != nil {
			return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%q", filePath), err)
		}
		mergeCatalogs(all, translations)
	}

	return all, nil
}

// MultiAdapter merges the catalogs of several adapters in order.
type MultiAdapter []TranslationAdapter

// Load implements the TranslationAdapter interface
func (m MultiAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	all := make(map[string]map[string]any)
	for _, a := range m {
		if a == nil {
			continue
		}
		translations, err := a.Load(ctx)
		if err != nil {
			return nil, err
		}
		mergeCatalogs(all, translations)
	}
	return all, nil
}

func mergeCatalogs(dst, src map[string]map[string]any) {
	for lang, translations := range src {
		if dst[lang] == nil {
			dst[lang] = make(map[string]any)
		}
		deepMerge(dst[lang], translations)
	}
}

func deepMerge(dst, src map[string]any) {
	for k, v := range src {
		sv, srcIsMap := v.(map[string]any)
		dv, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			deepMerge(dv, sv)
			continue
		}
		if srcIsMap {
			cp := make(map[string]any, len(sv))
			deepMerge(cp, sv)
			dst[k] = cp
			continue
		}
		dst[k] = v
	}
}
