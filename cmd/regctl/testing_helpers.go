package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/regkit/internal/testutil"
)

// useFake points the CLI at fake and resets every global flag. The
// config path is a file that does not exist, so only defaults apply.
func useFake(t *testing.T, fake *testutil.FakeReg) {
	t.Helper()
	client, runner = nil, fake
	debug, quiet, jsonOut, yamlOut, bits = false, false, false, false, 0
	deleteDefault, clearValuesOnly, clearKeysOnly, keysLowercase = false, false, false, false
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() {
		client, runner = nil, nil
		configPath = ""
	})
}

// testCmd readies a command for a direct runX call: it gets a context and
// the persistent --bits flag, set to viewBits when nonzero.
func testCmd(t *testing.T, cmd *cobra.Command, viewBits int) *cobra.Command {
	t.Helper()
	cmd.SetContext(context.Background())
	cmd.Flags().IntVar(&bits, "bits", 0, "")
	if viewBits != 0 {
		if err := cmd.Flags().Set("bits", strconv.Itoa(viewBits)); err != nil {
			t.Fatalf("set bits: %v", err)
		}
	}
	return cmd
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// decodeJSON checks that output is valid JSON and returns it
func decodeJSON(t *testing.T, output string) map[string]any {
	t.Helper()
	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// decodeYAML checks that output is valid YAML and returns it
func decodeYAML(t *testing.T, output string) map[string]any {
	t.Helper()
	var result map[string]any
	if err := yaml.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("invalid YAML output: %v\nOutput: %s", err, output)
	}
	return result
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
