package i18n_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kinderkit/pkg/i18n"
)

func TestFSAdapter(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/a.yaml": {Data: []byte("zh:\n  validation:\n    required: \"%{field}为必填项\"\n")},
		"locales/b.json": {Data: []byte(`{"zh":{"validation":{"enum":"%{field}取值无效"}},"en":{"fields":{"name":"Name"}}}`)},
		"locales/c.txt":  {Data: []byte("ignored")},
	}

	data, err := i18n.NewFSAdapter(fsys, "locales").Load(context.Background())
	require.NoError(t, err)

	validation, ok := data["zh"]["validation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "%{field}为必填项", validation["required"])
	assert.Equal(t, "%{field}取值无效", validation["enum"])
	assert.Contains(t, data, "en")

	t.Run("empty directory", func(t *testing.T) {
		_, err := i18n.NewFSAdapter(fstest.MapFS{"x/readme.md": {}}, "x").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrNoTranslationFiles)
	})

	t.Run("broken file", func(t *testing.T) {
		broken := fstest.MapFS{"l/a.json": {Data: []byte(`{"zh":`)}}
		_, err := i18n.NewFSAdapter(broken, "l").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToParseFile)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.NewFSAdapter(fsys, "locales").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrLoadingTranslationsCancelled)
	})
}

func TestFileAdapter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "messages.yaml")
	require.NoError(t, os.WriteFile(file, []byte("en:\n  fields:\n    name: Name\n"), 0o600))

	data, err := i18n.NewFileAdapter(nil, file).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Name"}, data["en"]["fields"])

	_, err = i18n.NewFileAdapter(nil, filepath.Join(dir, "messages.txt")).Load(context.Background())
	assert.ErrorIs(t, err, i18n.ErrUnsupportedFile)

	_, err = i18n.NewFileAdapter(nil, filepath.Join(dir, "missing.json")).Load(context.Background())
	assert.ErrorIs(t, err, i18n.ErrFailedToReadFile)
}

func TestMultiAdapter(t *testing.T) {
	t.Parallel()

	a := &i18n.MapAdapter{Data: map[string]map[string]any{
		"zh": {"validation": map[string]any{"required": "必填", "enum": "无效"}},
	}}
	b := &i18n.MapAdapter{Data: map[string]map[string]any{
		"zh": {"validation": map[string]any{"enum": "取值无效"}, "fields": map[string]any{"name": "名称"}},
	}}

	data, err := i18n.MultiAdapter{a, nil, b}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"required": "必填", "enum": "取值无效"}, data["zh"]["validation"])
	assert.Equal(t, map[string]any{"name": "名称"}, data["zh"]["fields"])

	// sources are not modified by merging
	assert.Equal(t, map[string]any{"required": "必填", "enum": "无效"}, a.Data["zh"]["validation"])
}

func TestParsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := i18n.NewYAMLParser().Parse(ctx, "zh: plain")
	assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)

	_, err = i18n.NewJSONParser().Parse(ctx, `{"zh":"plain"}`)
	assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)

	assert.True(t, i18n.NewYAMLParser().SupportsFileExtension(".yml"))
	assert.True(t, i18n.NewJSONParser().SupportsFileExtension("JSON"))
	assert.Nil(t, i18n.NewParserForFile("notes.txt"))
	assert.IsType(t, &i18n.YAMLParser{}, i18n.NewParserForFile("locales/zh.yaml"))
	assert.IsType(t, &i18n.JSONParser{}, i18n.NewParserForFile("en.json"))

	_, err = i18n.NewJSONParser().Parse(ctx, `{}`)
	assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = i18n.NewYAMLParser().Parse(cancelled, "en: {}")
	assert.ErrorIs(t, err, i18n.ErrYAMLParsingCancelled)
}
