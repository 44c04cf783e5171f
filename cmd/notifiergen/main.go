// notifiergen renders the owner declared by an endpoint schema into Go
// source.
//
// Usage:
//
//	notifiergen -i notifier.yaml [-o notifier_gen.go | -o -] [--check]
//
// The schema may be YAML, TOML or JSONC, picked by extension. Without -o the
// file is written next to the schema as notifier_gen.go. With --check nothing
// is written and the command fails when the existing file is out of date.
//
// Typically invoked through go:generate:
//
//	//go:generate go run github.com/rnkv/notifier-go/cmd/notifiergen -i notifier.yaml
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/rnkv/notifier-go/internal/gen"
	"github.com/rnkv/notifier-go/internal/logging"
)

const defaultOutput = "notifier_gen.go"

var errStale = errors.New("generated file is out of date")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "notifiergen: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var input, output string
	var check bool

	flagSet := pflag.NewFlagSet("notifiergen", pflag.ContinueOnError)
	flagSet.StringVarP(&input, "input", "i", "", "endpoint schema (.yaml, .yml, .toml, .json, .jsonc)")
	flagSet.StringVarP(&output, "output", "o", "", "generated file, - for stdout (default: "+defaultOutput+" next to the schema)")
	flagSet.BoolVar(&check, "check", false, "fail if the generated file is out of date instead of writing it")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if input == "" {
		return errors.New("missing --input")
	}
	if check && output == "-" {
		return errors.New("--check compares against a file, not -o -")
	}

	logger := logging.ConfigureRuntime()

	if output == "" {
		output = filepath.Join(filepath.Dir(input), defaultOutput)
	}

	src, err := gen.Generate(input)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := stdout.Write(src)
		return err
	}

	if check {
		existing, err := os.ReadFile(output)
		if err != nil {
			return fmt.Errorf("reading %s: %w", output, err)
		}
		if !bytes.Equal(existing, src) {
			return fmt.Errorf("%s: %w, rerun notifiergen -i %s", output, errStale, input)
		}

		logger.Debug("Up to date.", slog.String("output", output))
		return nil
	}

	if err := os.WriteFile(output, src, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	logger.Info("Generated.", slog.String("schema", input), slog.String("output", output))
	return nil
}
