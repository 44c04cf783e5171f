package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const schema = `
package: demo
owner: Pair
endpoints:
  - name: left
    type: string
    capacity: 1
  - name: right
    type: string
    capacity: 1
`

func writeSchema(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "notifier.yaml")
	if err := os.WriteFile(path, []byte(schema), 0o644); err != nil {
		t.Fatalf("writing schema: %v", err)
	}
	return path
}

func TestRunWritesNextToSchema(t *testing.T) {
	input := writeSchema(t)

	if err := run([]string{"-i", input}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	output := filepath.Join(filepath.Dir(input), defaultOutput)
	src, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(src), "func NewPair() *Pair {") {
		t.Fatalf("unexpected output:\n%s", src)
	}

	if err := run([]string{"-i", input, "--check"}, &bytes.Buffer{}); err != nil {
		t.Fatalf("check of fresh output: %v", err)
	}

	if err := os.WriteFile(output, append(src, "// edited\n"...), 0o644); err != nil {
		t.Fatalf("editing output: %v", err)
	}
	if err := run([]string{"-i", input, "--check"}, &bytes.Buffer{}); !errors.Is(err, errStale) {
		t.Fatalf("check of edited output = %v, want errStale", err)
	}
}

func TestRunStdout(t *testing.T) {
	input := writeSchema(t)

	var stdout bytes.Buffer
	if err := run([]string{"--input", input, "-o", "-"}, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}

	if !strings.HasPrefix(stdout.String(), "// Code generated by notifiergen from notifier.yaml. DO NOT EDIT.") {
		t.Fatalf("unexpected stdout:\n%s", stdout.String())
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(input), defaultOutput)); !os.IsNotExist(err) {
		t.Fatalf("file written although -o - was given: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing input", nil, "missing --input"},
		{"extra argument", []string{"-i", "a.yaml", "b.yaml"}, "unexpected argument"},
		{"check on stdout", []string{"-i", "a.yaml", "-o", "-", "--check"}, "--check"},
		{"unknown flag", []string{"--frobnicate"}, "frobnicate"},
		{"missing file", []string{"-i", filepath.Join(t.TempDir(), "none.yaml")}, "none.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("run(%v) = %v, want error mentioning %q", tt.args, err, tt.want)
			}
		})
	}
}
