package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/property/internal/core/observability/log"
	"github.com/zeusync/property/internal/core/schema"
	"github.com/zeusync/property/internal/injector"
	"github.com/zeusync/property/pkg/property/validation"
)

var errUsage = errors.New("usage")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `propctl - inspect the property factory registry and build property schemas

Usage:
  propctl <command> [arguments]

Commands:
  factories [-config file]                List the registered factories
  build -schema file [-config file]       Build a schema document and report each property
  help                                    Show this help`)
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "factories":
		return runFactories(args[1:], stdout)
	case "build":
		return runBuild(ctx, args[1:], stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %s", errUsage, args[0])
	}
}

type factoryInfo struct {
	Implementation string `json:"implementation"`
	Readable       string `json:"readable"`
	Writable       string `json:"writable"`
	ValueType      string `json:"value_type,omitempty"`
}

type factoriesOutput struct {
	Fingerprint string        `json:"fingerprint"`
	Frozen      bool          `json:"frozen"`
	Factories   []factoryInfo `json:"factories"`
}

func runFactories(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("factories", flag.ContinueOnError)
	configPath := fs.String("config", "", "configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rt, cleanup, err := injector.InitializeRuntime(injector.ConfigPath(*configPath))
	if err != nil {
		return err
	}
	defer cleanup()

	out := factoriesOutput{
		Fingerprint: fmt.Sprintf("%016x", rt.Registry.Fingerprint()),
		Frozen:      rt.Registry.IsFrozen(),
	}
	for _, f := range rt.Registry.Factories() {
		info := factoryInfo{
			Implementation: f.ImplementationType().String(),
			Readable:       f.ReadableType().String(),
			Writable:       f.WritableType().String(),
		}
		if vt := f.ValueType(); vt != nil {
			info.ValueType = vt.String()
		}
		out.Factories = append(out.Factories, info)
	}
	return writeJSON(stdout, out)
}

type propertyReport struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	ReadOnly bool     `json:"read_only"`
	Value    any      `json:"value"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
}

func runBuild(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	configPath := fs.String("config", "", "configuration file")
	schemaPath := fs.String("schema", "", "schema document (YAML or JSON)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *schemaPath == "" {
		return fmt.Errorf("%w: build needs -schema", errUsage)
	}

	rt, cleanup, err := injector.InitializeRuntime(injector.ConfigPath(*configPath))
	if err != nil {
		return err
	}
	defer cleanup()

	doc, err := schema.LoadFile(*schemaPath)
	if err != nil {
		return err
	}
	props, err := schema.Build(ctx, rt.Builders, doc)
	if err != nil {
		return err
	}
	rt.Log.Info("schema built", log.String("schema", *schemaPath), log.Int("properties", len(props)))

	reports := make([]propertyReport, 0, len(props))
	for _, p := range props {
		report := propertyReport{
			Name:     p.Name(),
			Type:     p.ValueType().String(),
			ReadOnly: p.IsReadOnly(),
			Value:    p.GetAny(),
			Valid:    true,
		}
		if err := p.Validate(); err != nil {
			report.Valid = false
			for _, f := range validation.Failures(err) {
				report.Errors = append(report.Errors, f.Error())
			}
		}
		reports = append(reports, report)
	}
	return writeJSON(stdout, reports)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
