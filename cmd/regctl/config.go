package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/internal/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change regctl defaults",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd())
	rootCmd.AddCommand(cmd)
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a default to the config file",
		Long: fmt.Sprintf(`The set command writes one default to the config file.

Keys: %s

Example:
  regctl config set bits 64
  regctl config set lowercase true`, strings.Join(config.Keys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args)
		},
	}
}

func runConfigShow() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	file := cfg.File
	if file == "" {
		file = "(none)"
	}
	result := map[string]any{
		config.KeyBits:      cfg.Defaults.Bits,
		config.KeyDebug:     cfg.Defaults.Debug,
		config.KeyLowercase: cfg.Defaults.Lowercase,
		config.KeyFormat:    cfg.Defaults.Format,
		config.KeyProgram:   cfg.Program,
		"file":              file,
	}
	if structured() {
		return printResult(result)
	}
	for _, k := range slices.Concat(config.Keys, []string{"file"}) {
		printInfo("%s: %v\n", k, result[k])
	}
	return nil
}

func runConfigSet(args []string) error {
	if err := config.Set(configPath, args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	printInfo("Set %s = %s\n", args[0], args[1])
	return nil
}
