//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/mdrefs"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Unit,
	"c":    Check,
	"fuzz": Test.Fuzz,
	"dog":  Dogfood,
}

type (
	Test st.Namespace
	Lint st.Namespace
)

// fuzzTargets maps each fuzz function to its package.
var fuzzTargets = []struct{ name, pkg string }{
	{"FuzzOrganize", "./pkg/linkdefs"},
	{"FuzzComputeDiff", "./pkg/edit"},
	{"FuzzApplyTextEdits", "./pkg/edit"},
}

// Build compiles bin/mdrefs with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/mdrefs")
}

// Install puts mdrefs in $GOBIN.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/mdrefs")
}

// Clean removes build and coverage output.
func Clean() error {
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// Deps downloads and tidies modules.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Check formats, lints, tests and dogfoods.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Unit, Dogfood)
}

// Dogfood checks that the repository's own Markdown is organized.
func Dogfood() error {
	st.Deps(Build)
	return sh.RunV(binary, "organize", "--check", ".")
}

// Unit runs the test suite under gotestsum with race detection.
func (Test) Unit() error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", procs,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Fuzz runs every fuzz target for MDREFS_FUZZTIME (default 15s) each.
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("MDREFS_FUZZTIME"), "15s")
	for _, f := range fuzzTargets {
		fmt.Printf("%s (%s)\n", f.name, f.pkg)
		err := sh.RunV("go", "test", "-run", "^$", "-fuzz", "^"+f.name+"$", "-fuzztime", fuzzTime, f.pkg)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

// Default runs golangci-lint.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt fails when gofmt would change any file.
func (Lint) Fmt() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg", "stavefile.go")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

func ldflags() string {
	git := func(args ...string) string {
		out, err := sh.Output("git", args...)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(out)
	}
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}
