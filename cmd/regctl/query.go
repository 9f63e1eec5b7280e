package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/pkg/reg"
)

func init() {
	rootCmd.AddCommand(newQueryCmd())
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <path>",
		Short: "Show the values and subkeys of a key",
		Long: `The query command shows the values of a registry key, decoded to their
types, followed by its immediate subkeys.

Example:
  regctl query "HKCU\\Environment"
  regctl query "HKLM\\SOFTWARE\\Microsoft\\Windows\\CurrentVersion" --yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args)
		},
	}
	return cmd
}

type valueOutput struct {
	Name    string `json:"name"              yaml:"name"`
	Default bool   `json:"default,omitempty" yaml:"default,omitempty"`
	Type    string `json:"type"              yaml:"type"`
	Data    any    `json:"data"              yaml:"data"`
}

type queryOutput struct {
	Path    string        `json:"path"    yaml:"path"`
	Values  []valueOutput `json:"values"  yaml:"values"`
	Subkeys []string      `json:"subkeys" yaml:"subkeys"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	opts, err := callOptions(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	res, found, err := c.Query(cmd.Context(), path, opts)
	if err != nil {
		return fmt.Errorf("failed to query key: %w", err)
	}
	if !found {
		return fmt.Errorf("key not found: %s", path)
	}

	out := queryOutput{Path: res.Path, Values: []valueOutput{}, Subkeys: res.Subkeys}
	if out.Subkeys == nil {
		out.Subkeys = []string{}
	}
	for _, v := range res.Values {
		out.Values = append(out.Values, valueOutput{
			Name:    v.Name.Name(),
			Default: v.Name.IsDefault(),
			Type:    v.Type.String(),
			Data:    displayData(v.Data),
		})
	}

	if structured() {
		return printResult(out)
	}

	printInfo("%s\n", out.Path)
	for _, v := range out.Values {
		name := v.Name
		if v.Default {
			name = "(default)"
		}
		printInfo("  %s  %s  %s\n", name, v.Type, formatData(v.Data))
	}
	for _, k := range out.Subkeys {
		printInfo("  %s\\\n", k)
	}
	return nil
}

// displayData converts a decoded value into something JSON and YAML
// render legibly: hex for binary data, nil when the value is unset.
func displayData(v reg.Value) any {
	switch v := v.(type) {
	case nil:
		return nil
	case reg.Bytes:
		return hex.EncodeToString(v)
	case reg.Strings:
		return []string(v)
	case reg.Int:
		return int64(v)
	case reg.Int64:
		return int64(v)
	case reg.String:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatData(d any) string {
	switch d := d.(type) {
	case nil:
		return "(not set)"
	case []string:
		return strings.Join(d, ", ")
	default:
		return fmt.Sprint(d)
	}
}
