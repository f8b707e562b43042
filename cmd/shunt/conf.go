package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// configuration holds the merged defaults, config files, and flags after
// loadConfig has run.
var configuration *koanf.Koanf

// loadConfig is called by cobra after flags are parsed.
func loadConfig() {
	k := koanf.New(".")
	// Configuration files are found with the application key 'SHUNT' and
	// are in NestedText format.
	konf := koanfadapter.New(k, "SHUNT", []string{"nt"})
	konf.InitDefaults()
	if err := mergeFlags(konf); err != nil {
		tracing.Errorf(err.Error())
		os.Exit(1)
	}
	if err := configureTracing(konf); err != nil {
		tracing.Errorf(err.Error())
		os.Exit(1)
	}
	configuration = k
}

func mergeFlags(konf *koanfadapter.KConf) error {
	flags := rootCmd.PersistentFlags()
	return konf.Koanf().Load(posflag.Provider(flags, ".", konf.Koanf()), nil)
}

func configureTracing(konf *koanfadapter.KConf) error {
	if a := konf.GetString("tracing.adapter"); a != "" && a != "go" {
		tracing.Errorf("tracing adapter type '%s' currently not supported", a)
	}
	konf.Set("tracing.adapter", "go")
	dest, err := logDestination(konf.GetString("logfile"), konf.GetString("tracing.destination"))
	if err != nil {
		return err
	}
	if dest != "" {
		konf.Set("tracing.destination", dest)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Debugf("tracing to %q", dest)
	tracer().Debugf("configured with fmt=%q echo=%t", konf.GetString("fmt"), konf.Koanf().Bool("echo"))
	return nil
}

// logDestination chooses the URL trace output goes to. A --logfile other than
// stderr wins over a destination from configuration files; plain paths
// become file URLs. The result is empty for the default of stderr.
func logDestination(logfile, configured string) (string, error) {
	dest := configured
	if logfile != "" && logfile != "stderr" {
		dest = logfile
	}
	if dest == "" || strings.Contains(dest, ":/") {
		return dest, nil
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", fmt.Errorf("log file %q: %w", dest, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
