package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/kinderkit/pkg/schema"
)

var sanitizeFlags struct {
	entity string
	op     string
	input  string
}

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize",
	Short: "Print a record as the engine would normalize it",
	Long: `Apply the sanitizers of the schema to a record without validating it.
Undeclared keys are dropped.`,
	RunE: runSanitize,
}

func init() {
	rootCmd.AddCommand(sanitizeCmd)

	sanitizeCmd.Flags().StringVar(&sanitizeFlags.entity, "entity", "", "entity name")
	sanitizeCmd.Flags().StringVar(&sanitizeFlags.op, "op", "create", "operation name")
	sanitizeCmd.Flags().StringVar(&sanitizeFlags.input, "input", "-", "JSON or YAML file, - for stdin")
	_ = sanitizeCmd.MarkFlagRequired("entity")
}

func runSanitize(cmd *cobra.Command, _ []string) error {
	in, err := readObject(sanitizeFlags.input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	eng, closeStores, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStores()

	out, err := eng.Sanitize(sanitizeFlags.entity, sanitizeFlags.op, in)
	if err != nil {
		if schema.IsStructuralError(err) {
			_ = writeJSON(cmd.OutOrStdout(), map[string]string{"error": err.Error()})
			return &exitError{code: exitFailure}
		}
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}
