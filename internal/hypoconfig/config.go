// Package hypoconfig assembles a hypocontext.Config plus the set of roots a
// run should provision, from an environment overlay and command-line
// flags, the same two-stage shape the teacher module's internal/config
// package uses (env-file overlay via godotenv, then pflag parsing on top).
package hypoconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/hypoanalysis/hypo/internal/hypocontext"
)

// RootKind names one of spec §6's three built-in root kinds.
type RootKind string

const (
	RootKindDirectory   RootKind = "directory"
	RootKindArchive     RootKind = "archive"
	RootKindModuleImage RootKind = "module-image"
)

// RootSpec names a root to provision without yet opening it: Kind selects
// the constructor, Path is the directory/archive/module-image filesystem
// location, and IncludeGlobs/ExcludeGlobs feed a DirectoryRoot's list_all
// filtering (spec supplement: doublestar include/exclude).
type RootSpec struct {
	Kind         RootKind
	Path         string
	IncludeGlobs []string
	ExcludeGlobs []string
}

// Config bundles spec §4.D's Context configuration with the CLI/env-level
// concerns of which roots to provision and where to and persist run
// telemetry: not part of the core Context type itself, since those two
// concerns (which roots, where telemetry lives) are ambient/CLI plumbing
// rather than analytical-engine state.
type Config struct {
	Parallelism          int
	RequireFullClasspath bool

	CoreRoots    []RootSpec
	ContextRoots []RootSpec

	TelemetryDSN string
}

// Default mirrors hypocontext.DefaultConfig's values plus empty root lists
// and the teacher's own default SQLite file convention (a relative path
// under the working directory, matching db.Connect's directory-creation
// behavior for file DSNs).
func Default() *Config {
	return &Config{
		Parallelism:          -1,
		RequireFullClasspath: true,
		TelemetryDSN:         "hypo-telemetry.db",
	}
}

// LoadEnvOverlay loads a ".env" file into the process environment if one
// is present (errors are deliberately ignored, as the teacher's own
// db.sqlite_integration_test.go does with godotenv.Load(): a missing .env
// file is the common case, not a failure), then overlays HYPO_*
// environment variables onto cfg.
func LoadEnvOverlay(cfg *Config) *Config {
	_ = godotenv.Load()

	if v := os.Getenv("HYPO_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Parallelism = n
		}
	}
	if v := os.Getenv("HYPO_REQUIRE_FULL_CLASSPATH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RequireFullClasspath = b
		}
	}
	if v := os.Getenv("HYPO_ROOTS"); v != "" {
		cfg.CoreRoots = nil
		for _, path := range strings.Split(v, ",") {
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			cfg.CoreRoots = append(cfg.CoreRoots, RootSpec{Kind: RootKindDirectory, Path: path})
		}
	}
	if v := os.Getenv("HYPO_TELEMETRY_DSN"); v != "" {
		cfg.TelemetryDSN = v
	}
	return cfg
}

// BuildFromFlags parses args (typically os.Args[1:] past the subcommand
// name) into cfg, following the teacher's BuildConfigFromFlags shape:
// a pflag.FlagSet feeding a plain config struct, flags taking precedence
// over whatever the env overlay already set. Positional arguments left
// after flag parsing are returned as-is; they are not added to cfg's
// roots.
func BuildFromFlags(cfg *Config, args []string) (*Config, []string, error) {
	fs := pflag.NewFlagSet("hypo", pflag.ContinueOnError)

	parallelism := fs.IntP("parallelism", "p", cfg.Parallelism, "Worker-pool size; <= 0 means host CPU count.")
	requireFull := fs.Bool("require-full-classpath", cfg.RequireFullClasspath, "Fail unresolved lookups instead of folding them to absent.")
	roots := fs.StringSlice("root", nil, "Directory root to provision classes from (repeatable).")
	archives := fs.StringSlice("archive", nil, "Archive root to provision classes from (repeatable).")
	contextRoots := fs.StringSlice("context-root", nil, "Classpath-only directory root, resolvable but not iterated (repeatable).")
	telemetryDSN := fs.String("telemetry-db", cfg.TelemetryDSN, "SQLite DSN for the run-telemetry ledger.")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg.Parallelism = *parallelism
	cfg.RequireFullClasspath = *requireFull
	cfg.TelemetryDSN = *telemetryDSN
	for _, r := range *roots {
		cfg.CoreRoots = append(cfg.CoreRoots, RootSpec{Kind: RootKindDirectory, Path: r})
	}
	for _, a := range *archives {
		cfg.CoreRoots = append(cfg.CoreRoots, RootSpec{Kind: RootKindArchive, Path: a})
	}
	for _, r := range *contextRoots {
		cfg.ContextRoots = append(cfg.ContextRoots, RootSpec{Kind: RootKindDirectory, Path: r})
	}

	return cfg, fs.Args(), nil
}

// ToContextConfig projects the spec §4.D fields out of cfg.
func (c *Config) ToContextConfig() hypocontext.Config {
	return hypocontext.Config{
		Parallelism:          c.Parallelism,
		RequireFullClasspath: c.RequireFullClasspath,
	}
}

// Validate reports a configuration error for option combinations the CLI
// cannot act on, e.g. no roots at all.
func (c *Config) Validate() error {
	if len(c.CoreRoots) == 0 {
		return fmt.Errorf("hypoconfig: at least one core root is required (--root or --archive, or HYPO_ROOTS)")
	}
	return nil
}
