package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/types"
)

var deleteDefault bool

func init() {
	cmd := newDeleteCmd()
	cmd.Flags().BoolVar(&deleteDefault, "default", false, "Delete the unnamed (default) value")
	rootCmd.AddCommand(cmd)
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <path> [name]",
		Short: "Delete a registry key or value",
		Long: `The delete command deletes a key with all its subkeys and values, or a
single value when a name or --default is given. Deleting something that
does not exist succeeds.

Example:
  regctl delete "HKCU\\Software\\MyApp"
  regctl delete "HKCU\\Software\\MyApp" OldSetting
  regctl delete "HKCU\\Software\\MyApp" --default
  regctl delete "HKLM\\SOFTWARE\\MyApp" --bits 32`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args)
		},
	}
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	if deleteDefault && len(args) > 1 {
		return fmt.Errorf("--default and a value name are mutually exclusive")
	}

	c, err := getClient()
	if err != nil {
		return err
	}
	opts, err := callOptions(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	target := "key"
	switch {
	case deleteDefault:
		opts.Name = types.NamePtr(types.DefaultValue)
		target = "value"
	case len(args) > 1:
		opts.Name = types.NamePtr(types.Named(args[1]))
		target = "value"
	}

	if err := c.Delete(cmd.Context(), path, opts); err != nil {
		return fmt.Errorf("failed to delete %s: %w", target, err)
	}

	if structured() {
		result := map[string]any{
			"path":    path,
			"target":  target,
			"success": true,
		}
		if opts.Name != nil {
			result["name"] = opts.Name.String()
		}
		return printResult(result)
	}

	if opts.Name != nil {
		printInfo("Deleted value %s from %s\n", opts.Name, path)
	} else {
		printInfo("Deleted key %s\n", path)
	}
	return nil
}
