package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/kinderkit/pkg/engine"
	"github.com/dmitrymomot/kinderkit/pkg/schema"
)

var validateFlags struct {
	entity  string
	op      string
	input   string
	prior   string
	locale  string
	timeout time.Duration
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a record",
	Long: `Sanitize a record and check it against the schema registered for the
entity and operation. The result is printed as JSON.

Exit status is 1 when the record is invalid and 2 on a structural error,
such as an unknown entity, or when an external rule could not decide.

Examples:
  # Validate a new kindergarten
  kgvalidate validate --entity kindergarten --op create --input kg.json

  # Check a status change against the stored plan
  kgvalidate validate --entity enrollment-plan --op update --input change.json --prior plan.json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.entity, "entity", "", "entity name, see the list command")
	validateCmd.Flags().StringVar(&validateFlags.op, "op", "create", "operation name")
	validateCmd.Flags().StringVar(&validateFlags.input, "input", "-", "JSON or YAML file, - for stdin")
	validateCmd.Flags().StringVar(&validateFlags.prior, "prior", "", "stored record the status transition starts from")
	validateCmd.Flags().StringVar(&validateFlags.locale, "locale", "", "message locale, defaults to KG_DEFAULT_LOCALE")
	validateCmd.Flags().DurationVar(&validateFlags.timeout, "hook-timeout", 0, "per-hook timeout, defaults to KG_HOOK_TIMEOUT")
	_ = validateCmd.MarkFlagRequired("entity")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	in, err := readObject(validateFlags.input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	opts := []engine.CallOption{engine.WithLocale(validateFlags.locale)}
	if validateFlags.prior != "" {
		prior, err := readObject(validateFlags.prior, cmd.InOrStdin())
		if err != nil {
			return err
		}
		opts = append(opts, engine.WithPrior(prior))
	}
	if validateFlags.timeout > 0 {
		opts = append(opts, engine.WithHookTimeout(validateFlags.timeout))
	}

	eng, closeStores, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStores()

	res, err := eng.Validate(cmd.Context(), validateFlags.entity, validateFlags.op, in, opts...)
	if err != nil {
		if schema.IsStructuralError(err) {
			_ = writeJSON(cmd.OutOrStdout(), map[string]string{"error": err.Error()})
			return &exitError{code: exitFailure}
		}
		return err
	}

	if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	return resultStatus(res)
}

// resultStatus maps a result onto the exit status. Violations win over
// inconclusive hooks.
func resultStatus(res *engine.Result) error {
	switch {
	case !res.Valid:
		return &exitError{code: exitInvalid}
	case !res.Conclusive():
		return &exitError{code: exitFailure}
	}
	return nil
}
