package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kinderkit/pkg/engine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

const kindergartenJSON = `{
  "name": "  Sunshine Kindergarten ",
  "code": "SUN-001",
  "type": "private",
  "address": {"province": "Zhejiang", "city": "Hangzhou", "detail": "12 Wensan Road"},
  "contactPhone": "13588886666",
  "capacity": 300
}`

const kindergartenYAML = `name: Sunshine Kindergarten
code: SUN-001
type: private
address:
  province: Zhejiang
  city: Hangzhou
  detail: 12 Wensan Road
contactPhone: "13588886666"
capacity: 300
establishedAt: 2010-09-01
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testCommand(stdin string) (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	return cmd, out
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return exitOK
	}
	ee, ok := err.(*exitError)
	require.True(t, ok, "unexpected error: %v", err)
	return ee.code
}

func TestReadObject(t *testing.T) {
	t.Run("json file", func(t *testing.T) {
		in, err := readObject(writeFile(t, "kg.json", kindergartenJSON), nil)
		require.NoError(t, err)
		assert.Equal(t, "SUN-001", in["code"])
		assert.Equal(t, float64(300), in["capacity"])
	})

	t.Run("yaml file keeps dates as strings", func(t *testing.T) {
		in, err := readObject(writeFile(t, "kg.yaml", kindergartenYAML), nil)
		require.NoError(t, err)
		assert.Equal(t, "2010-09-01", in["establishedAt"])
		assert.Equal(t, 300, in["capacity"])
	})

	t.Run("stdin", func(t *testing.T) {
		in, err := readObject("-", strings.NewReader(`{"code": "SUN-001"}`))
		require.NoError(t, err)
		assert.Equal(t, "SUN-001", in["code"])
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := readObject("-", strings.NewReader("  \n"))
		assert.ErrorIs(t, err, errEmptyInput)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := readObject(writeFile(t, "list.json", `[1, 2]`), nil)
		assert.Error(t, err)

		_, err = readObject(writeFile(t, "null.json", `null`), nil)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readObject(filepath.Join(t.TempDir(), "missing.json"), nil)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRunValidate(t *testing.T) {
	reset := func() {
		validateFlags.entity = "kindergarten"
		validateFlags.op = "create"
		validateFlags.input = "-"
		validateFlags.prior = ""
		validateFlags.locale = "en"
		validateFlags.timeout = 0
		stores = nil
	}

	t.Run("valid record", func(t *testing.T) {
		reset()
		cmd, out := testCommand(kindergartenJSON)
		require.Equal(t, exitOK, exitCode(t, runValidate(cmd, nil)))

		var res engine.Result
		require.NoError(t, json.Unmarshal(out.Bytes(), &res))
		assert.True(t, res.Valid)
		assert.Equal(t, "Sunshine Kindergarten", res.Value["name"])
	})

	t.Run("invalid record", func(t *testing.T) {
		reset()
		cmd, out := testCommand(`{"code": "SUN-001"}`)
		assert.Equal(t, exitInvalid, exitCode(t, runValidate(cmd, nil)))

		var res engine.Result
		require.NoError(t, json.Unmarshal(out.Bytes(), &res))
		assert.False(t, res.Valid)
		assert.NotEmpty(t, res.Errors)
		assert.Equal(t, validator.CodeRequired, res.Errors[0].Code)
	})

	t.Run("illegal transition from prior", func(t *testing.T) {
		reset()
		validateFlags.op = "update"
		validateFlags.prior = writeFile(t, "prior.json", `{"status": "closed"}`)
		cmd, out := testCommand(`{"id": "7c9e6679-7425-40de-944b-e07fc1f90ae7", "status": "active"}`)
		assert.Equal(t, exitInvalid, exitCode(t, runValidate(cmd, nil)))
		assert.Contains(t, out.String(), validator.CodeTransition)
	})

	t.Run("unknown entity", func(t *testing.T) {
		reset()
		validateFlags.entity = "canteen"
		cmd, out := testCommand(`{}`)
		assert.Equal(t, exitFailure, exitCode(t, runValidate(cmd, nil)))
		assert.Contains(t, out.String(), `"error"`)
	})

	t.Run("unknown store", func(t *testing.T) {
		reset()
		stores = []string{"cassandra"}
		cmd, _ := testCommand(kindergartenJSON)
		err := runValidate(cmd, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cassandra")
	})
}

func TestResultStatus(t *testing.T) {
	assert.NoError(t, resultStatus(&engine.Result{Valid: true}))

	err := resultStatus(&engine.Result{Valid: true, Failures: []engine.ExternalFailure{{RuleID: "kindergarten.code.unique"}}})
	assert.Equal(t, exitFailure, exitCode(t, err))

	err = resultStatus(&engine.Result{
		Errors:   validator.ValidationErrors{{Code: validator.CodeRequired}},
		Failures: []engine.ExternalFailure{{RuleID: "kindergarten.code.unique"}},
	})
	assert.Equal(t, exitInvalid, exitCode(t, err))
}

func TestRunSanitize(t *testing.T) {
	stores = nil
	sanitizeFlags.entity = "kindergarten"
	sanitizeFlags.op = "create"
	sanitizeFlags.input = "-"

	cmd, out := testCommand(`{"name": "  Sunshine Kindergarten ", "undeclared": true}`)
	require.NoError(t, runSanitize(cmd, nil))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, map[string]any{"name": "Sunshine Kindergarten"}, got)
}

func TestRunList(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		listFlags.format = "text"
		cmd, out := testCommand("")
		require.NoError(t, runList(cmd, nil))
		assert.Contains(t, out.String(), "kindergarten/create\n")
		assert.Contains(t, out.String(), "enrollment-quota/transfer\n")
	})

	t.Run("json with statuses", func(t *testing.T) {
		listFlags.format = "json"
		cmd, out := testCommand("")
		require.NoError(t, runList(cmd, nil))

		var entries []listEntry
		require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
		require.NotEmpty(t, entries)
		for _, e := range entries {
			if e.Entity == "enrollment-plan" && e.Operation == "create" {
				assert.Equal(t, []string{"draft", "published", "active", "paused", "completed", "cancelled"}, e.Statuses)
			}
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		listFlags.format = "xml"
		cmd, _ := testCommand("")
		assert.Error(t, runList(cmd, nil))
	})
}

func TestRunPing(t *testing.T) {
	stores = nil
	cmd, _ := testCommand("")
	assert.ErrorIs(t, runPing(cmd, nil), errNoStores)
}
