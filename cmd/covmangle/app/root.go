// Package app wires the covmangle command line: discovery of the
// tested and static function sets, the per-record attribution pass,
// and streaming of the rewritten report to stdout.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/covmangle/internal/attribute"
	"github.com/zjy-dev/covmangle/internal/callgraph"
	"github.com/zjy-dev/covmangle/internal/config"
	"github.com/zjy-dev/covmangle/internal/discover"
	"github.com/zjy-dev/covmangle/internal/exec"
	"github.com/zjy-dev/covmangle/internal/lcov"
	"github.com/zjy-dev/covmangle/internal/logger"
)

// NewMangleCommand creates the root command for the covmangle tool.
func NewMangleCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "covmangle <coverage_file.info>",
		Short: "Strip coverage not attributable to unit tests from an lcov report.",
		Long: `covmangle rewrites an lcov .info report so it only counts coverage a
unit test can vouch for. An executed function keeps its coverage when
it has a unit test of its own, when its public counterpart does, or
when it is static and some tested function in the same source file
reaches it in the compiler's call graph. Everything else has its
execution counters zeroed, with the record's FNH/LH totals adjusted to
stay consistent.

The rewritten report is written to stdout, one record at a time, in
input order. Run it from (or point source_root at) the built source
tree so the *_test.c drivers and the .ci call-graph dumps can be found.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Mirror the historical behavior: a missing or invalid
			// argument prints usage and exits zero.
			if len(args) != 1 {
				return cmd.Usage()
			}
			if info, err := os.Stat(args[0]); err != nil || info.IsDir() {
				return cmd.Usage()
			}

			return run(cmd, args[0], configPath, logLevel)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a config file (built-in defaults apply when absent)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	return cmd
}

func run(cmd *cobra.Command, reportPath, configPath, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger.SetLevel(cfg.LogLevel)

	tested, err := discover.TestedFunctions(os.DirFS(cfg.SourceRoot), cfg.ExtraTested)
	if err != nil {
		return err
	}

	scanDirs := make([]string, 0, len(cfg.StaticScanDirs))
	for _, dir := range cfg.StaticScanDirs {
		scanDirs = append(scanDirs, filepath.Join(cfg.SourceRoot, dir))
	}
	static, err := discover.StaticFunctions(exec.NewCommandExecutor(), scanDirs)
	if err != nil {
		return err
	}
	logger.Infof("discovered %d tested and %d static functions", len(tested), len(static))

	records, err := lcov.RecordizeFile(reportPath)
	if err != nil {
		return err
	}

	artifacts, err := callgraph.FindArtifacts(cfg.SourceRoot)
	if err != nil {
		return err
	}

	sourceRoot, err := filepath.Abs(cfg.SourceRoot)
	if err != nil {
		return err
	}

	engine := attribute.NewEngine(tested, static, cfg.Reachability.Exceptions,
		cfg.PrivatePrefix, cfg.PublicPrefix)

	out := cmd.OutOrStdout()
	for _, rec := range records {
		// SF: paths are absolute; artifact paths are relative to the
		// source root.
		sourceFile := strings.TrimPrefix(rec.SourceFile(), sourceRoot+string(filepath.Separator))

		var g *callgraph.Graph
		if artifact := callgraph.MatchArtifact(artifacts, sourceFile); artifact != "" {
			g, err = callgraph.Build(filepath.Join(cfg.SourceRoot, artifact))
			if err != nil {
				return err
			}
		} else {
			logger.Debugf("no call graph for %s, passing record through", sourceFile)
		}

		rec, err = engine.MangleRecord(rec, g)
		if err != nil {
			return err
		}

		fmt.Fprint(out, rec.Render())
	}

	return nil
}
