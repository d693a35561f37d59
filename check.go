package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"golang.org/x/sys/unix"

	"gitlab.com/tinyland/lab/sigscope/config"
	"gitlab.com/tinyland/lab/sigscope/display/color"
	"gitlab.com/tinyland/lab/sigscope/scope"
	"gitlab.com/tinyland/lab/sigscope/sources"
)

// CheckResult is the outcome of one preflight check.
type CheckResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// CheckReport collects preflight results for a configuration.
type CheckReport struct {
	Status  string        `json:"status"`
	Variant string        `json:"variant"`
	Checks  []CheckResult `json:"checks"`
}

// checker runs preflight checks. Its system hooks are overridable for tests.
type checker struct {
	access     func(path string, mode uint32) error
	isTerminal func() bool
	sources    func(cfg *config.Config, v scope.Variant) *sources.Registry
	timeout    time.Duration
}

// newChecker returns a checker wired to the real system.
func newChecker() checker {
	return checker{
		access: unix.Access,
		isTerminal: func() bool {
			return term.IsTerminal(os.Stdout.Fd())
		},
		sources: func(cfg *config.Config, v scope.Variant) *sources.Registry {
			return buildSources(cfg, v, nil)
		},
		timeout: 2 * time.Second,
	}
}

// run performs every check that applies to cfg.
func (c checker) run(cfg *config.Config) CheckReport {
	report := CheckReport{Variant: cfg.Scope.Variant}
	add := func(name string, err error) {
		r := CheckResult{Name: name, OK: err == nil}
		if err != nil {
			r.Detail = err.Error()
		}
		report.Checks = append(report.Checks, r)
	}

	add("config", cfg.Validate())

	variant, err := scope.VariantByName(cfg.Scope.Variant)
	if err != nil {
		report.Status = statusOf(report.Checks)
		return report
	}

	registry := c.sources(cfg, variant)

	if variant.Toggle {
		path := devicePath(cfg, registry)
		add("device readable", c.accessErr(path, unix.R_OK))
		add("device writable", c.accessErr(path, unix.W_OK))
	}

	for _, name := range variant.Sources() {
		src, ok := registry.Get(name)
		if !ok {
			add("read "+name, fmt.Errorf("source %q is not registered", name))
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		_, err := src.Read(ctx)
		cancel()
		add("read "+name, err)
	}

	var ttyErr error
	if !c.isTerminal() {
		ttyErr = fmt.Errorf("stdout is not a terminal")
	}
	add("terminal", ttyErr)

	report.Status = statusOf(report.Checks)
	return report
}

// accessErr checks path for mode and names the path in the error.
func (c checker) accessErr(path string, mode uint32) error {
	if err := c.access(path, mode); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// devicePath returns the path the registered device source opens, which
// applies the default when the configured path is empty.
func devicePath(cfg *config.Config, registry *sources.Registry) string {
	for _, src := range registry.All() {
		if d, ok := src.(*sources.DeviceSource); ok {
			return d.Path()
		}
	}
	return cfg.Device.Path
}

// statusOf summarizes check results as "ok" or "failed".
func statusOf(checks []CheckResult) string {
	for _, c := range checks {
		if !c.OK {
			return "failed"
		}
	}
	return "ok"
}

// writeReport prints the report as text or JSON.
func writeReport(w io.Writer, report CheckReport, jsonOutput bool) error {
	if jsonOutput {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal check report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "sigscope preflight (%s)\n", report.Variant)
	for _, c := range report.Checks {
		mark := "ok  "
		if !c.OK {
			mark = "FAIL"
		}
		if c.Detail != "" {
			fmt.Fprintf(w, "  [%s] %s: %s\n", mark, c.Name, color.StripANSI(c.Detail))
		} else {
			fmt.Fprintf(w, "  [%s] %s\n", mark, c.Name)
		}
	}
	_, err := fmt.Fprintf(w, "status: %s\n", report.Status)
	return err
}

// runPreflight runs the checks, prints the report, and returns the process
// exit code: 0 when every check passed, 1 otherwise.
func runPreflight(w io.Writer, cfg *config.Config, jsonOutput bool) int {
	report := newChecker().run(cfg)
	if err := writeReport(w, report, jsonOutput); err != nil {
		fmt.Fprintf(os.Stderr, "write report: %v\n", err)
		return 1
	}
	if report.Status != "ok" {
		return 1
	}
	return 0
}
