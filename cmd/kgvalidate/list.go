package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/kinderkit/pkg/schemas"
)

var listFlags struct {
	format string
}

type listEntry struct {
	Entity    string   `json:"entity"`
	Operation string   `json:"operation"`
	Statuses  []string `json:"statuses,omitempty"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered entity/operation pairs",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listFlags.format, "format", "text", "output format: text, json")
}

func runList(cmd *cobra.Command, _ []string) error {
	reg, err := schemas.NewRegistry()
	if err != nil {
		return err
	}
	keys := reg.Keys()

	switch listFlags.format {
	case "json":
		entries := make([]listEntry, 0, len(keys))
		for _, k := range keys {
			ent, err := reg.Lookup(k.Entity, k.Operation)
			if err != nil {
				return err
			}
			e := listEntry{Entity: k.Entity, Operation: k.Operation}
			for _, s := range ent.Statuses() {
				e.Statuses = append(e.Statuses, string(s))
			}
			entries = append(entries, e)
		}
		return writeJSON(cmd.OutOrStdout(), entries)
	case "text":
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k.String())
		}
		return nil
	}
	return fmt.Errorf("unsupported format: %s", listFlags.format)
}
