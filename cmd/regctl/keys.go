package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var keysLowercase bool

func init() {
	cmd := newKeysCmd()
	cmd.Flags().BoolVar(&keysLowercase, "lowercase", false, "Print key names in lower case")
	rootCmd.AddCommand(cmd)
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <path>",
		Short: "List the subkeys of a key",
		Long: `The keys command lists the immediate subkeys of a registry key. A key
that does not exist has no subkeys.

Example:
  regctl keys "HKCU\\Software"
  regctl keys "HKLM\\SOFTWARE" --bits 32 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(cmd, args)
		},
	}
	return cmd
}

func runKeys(cmd *cobra.Command, args []string) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	opts, err := callOptions(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("lowercase") {
		opts.Lowercase = &keysLowercase
	}

	path := args[0]
	keys, err := c.Keys(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if structured() {
		return printResult(map[string]any{
			"path":  path,
			"keys":  keys,
			"count": len(keys),
		})
	}

	for _, key := range keys {
		printInfo("%s\n", key)
	}
	return nil
}
