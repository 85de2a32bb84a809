package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gubarz/snipmd/internal/config"
	"github.com/gubarz/snipmd/internal/runner"
	"github.com/gubarz/snipmd/internal/snippet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "snipmd [path]",
	Short: "Keep markdown code blocks in sync with real source files",
	Long: `Synchronizes fenced code blocks in Markdown files with excerpts
of real source files.

Annotate a code block with a snippet directive:

  <!-- snippet file=examples/demo.go start="BEGIN demo" end="END demo" -->

snipmd extracts the delimited excerpt, normalizes it, and rewrites the
block body in place. Run "snipmd check" in CI to catch drift.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runSync,
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Report snippet blocks that are out of sync",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

var depsCmd = &cobra.Command{
	Use:   "deps [path]",
	Short: "List every source file referenced by snippet directives",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDeps,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(depsCmd)

	rootCmd.PersistentFlags().StringP("missing", "m", "", "Missing-file policy: fail, placeholder")
	rootCmd.PersistentFlags().IntP("concurrency", "c", 0, "Files processed in parallel")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolP("watch", "w", false, "Re-sync whenever files under path change")

	viper.BindPFlag("missing", rootCmd.PersistentFlags().Lookup("missing"))
	viper.BindPFlag("concurrency", rootCmd.PersistentFlags().Lookup("concurrency"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if config.GetVerbose() {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// resolvePath picks the docs path from the argument or config and resolves
// it to an absolute path that must exist.
func resolvePath(args []string) (string, error) {
	path := config.GetPath()
	if len(args) > 0 {
		path = args[0]
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("error resolving path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return "", fmt.Errorf("path error: %w", err)
	}
	return absPath, nil
}

func newRunner() (*runner.Runner, *snippet.Registry, *zap.Logger, error) {
	log, err := newLogger()
	if err != nil {
		return nil, nil, nil, err
	}
	registry := snippet.NewRegistry()
	return runner.New(log, registry), registry, log, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	path, err := resolvePath(args)
	if err != nil {
		return err
	}

	r, _, log, err := newRunner()
	if err != nil {
		return err
	}
	defer log.Sync()

	summary, err := r.Sync(path)
	if err != nil {
		return err
	}
	for _, f := range summary.Files {
		if f.Changed {
			fmt.Println(f.Path)
		}
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return r.Watch(ctx, path)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	path, err := resolvePath(args)
	if err != nil {
		return err
	}

	r, _, log, err := newRunner()
	if err != nil {
		return err
	}
	defer log.Sync()

	summary, err := r.Check(path)
	if err != nil {
		return err
	}

	styles := runner.DefaultStyles()
	styles.LoadFromConfig()
	fmt.Println(summary.Render(styles))

	if n := summary.DriftCount(); n > 0 {
		return fmt.Errorf("%d snippet blocks out of sync", n)
	}
	return nil
}

func runDeps(cmd *cobra.Command, args []string) error {
	path, err := resolvePath(args)
	if err != nil {
		return err
	}

	r, registry, log, err := newRunner()
	if err != nil {
		return err
	}
	defer log.Sync()

	// Check walks the tree without writing, which is enough to record
	// every referenced file. The placeholder policy keeps the traversal
	// going past missing sources so the listing always completes.
	if _, err := r.WithMissing(config.MissingPlaceholder).Check(path); err != nil {
		return err
	}
	for _, p := range registry.Relative() {
		fmt.Println(p)
	}
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
