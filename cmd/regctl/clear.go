package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	clearValuesOnly bool
	clearKeysOnly   bool
)

func init() {
	cmd := newClearCmd()
	cmd.Flags().BoolVar(&clearValuesOnly, "values-only", false, "Delete only the values, keep subkeys")
	cmd.Flags().BoolVar(&clearKeysOnly, "keys-only", false, "Delete only the subkeys, keep values")
	cmd.MarkFlagsMutuallyExclusive("values-only", "keys-only")
	rootCmd.AddCommand(cmd)
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <path>",
		Short: "Delete everything inside a registry key",
		Long: `The clear command deletes the values and subkeys of a key but keeps the
key itself. Values and subkeys are deleted concurrently; if one deletion
fails, the ones already done stay done.

Example:
  regctl clear "HKCU\\Software\\MyApp"
  regctl clear "HKCU\\Software\\MyApp" --values-only
  regctl clear "HKCU\\Software\\MyApp" --keys-only --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, args)
		},
	}
	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	opts, err := callOptions(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	scope := "all"
	switch {
	case clearValuesOnly:
		scope = "values"
		err = c.ClearValues(cmd.Context(), path, opts)
	case clearKeysOnly:
		scope = "keys"
		err = c.ClearKeys(cmd.Context(), path, opts)
	default:
		err = c.Clear(cmd.Context(), path, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", path, err)
	}

	if structured() {
		return printResult(map[string]any{
			"path":    path,
			"cleared": scope,
			"success": true,
		})
	}

	switch scope {
	case "values":
		printInfo("Cleared values of %s\n", path)
	case "keys":
		printInfo("Cleared subkeys of %s\n", path)
	default:
		printInfo("Cleared %s\n", path)
	}
	return nil
}
