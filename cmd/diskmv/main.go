package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/desertwitch/diskmv/internal/configuration"
	"github.com/desertwitch/diskmv/internal/filesystem"
	"github.com/desertwitch/diskmv/internal/move"
	"github.com/desertwitch/diskmv/internal/pathing"
	"github.com/desertwitch/diskmv/internal/report"
	"github.com/desertwitch/diskmv/internal/schema"
	"github.com/desertwitch/diskmv/internal/unraid"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals
var (
	// Version is set at build time.
	Version = "dev"
)

//nolint:gochecknoglobals
var rootCmd = &cobra.Command{
	Use:   "diskmv [flags] path srcdisk destdisk",
	Short: "Move a share path from one Unraid disk to another",
	Long: `diskmv moves files and directories of a user share from one disk to
another, preserving the share path. A file is only ever removed from the
source disk after it was copied to the destination disk and the copy
verified. Without -f, diskmv performs a dry run and only reports what a
real invocation would do.`,
	Version: Version,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) != 3 {
			return fmt.Errorf("%w: requires exactly 3 arguments: path srcdisk destdisk", ErrMalformedFlag)
		}

		return nil
	},
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          run,
}

//nolint:gochecknoinits
func init() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrMalformedFlag, err)
	})

	registerFlags(rootCmd)
}

func registerFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("test", "t", false, "dry run, report only (default)")
	cmd.Flags().BoolP("force", "f", false, "disable dry run, perform real moves")
	cmd.Flags().BoolP("keepsource", "k", false, "do not delete source after successful copy")
	cmd.Flags().BoolP("links", "l", false, "copy symlinks as symlinks (default: ignore them)")
	cmd.Flags().BoolP("clobber", "c", false, "overwrite duplicates at destination")
	cmd.Flags().Uint64P("small", "s", 0, "only move files up to N kilobytes")
	cmd.Flags().StringSliceP("extension", "e", nil, "only move files with an extension from this comma-separated list")
	cmd.Flags().CountP("verbose", "v", "increase verbosity (repeatable)")
	cmd.Flags().CountP("quiet", "q", "decrease verbosity (repeatable)")
}

func main() {
	setupLogging(slog.LevelInfo)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		if isUsageError(err) {
			fmt.Fprint(os.Stderr, rootCmd.UsageString())
		}

		os.Exit(1)
	}
}

// isUsageError reports whether an error belongs to the argument/validation
// taxonomy, which warrants repeating the usage text.
func isUsageError(err error) bool {
	return errors.Is(err, pathing.ErrInvalidPath) ||
		errors.Is(err, unraid.ErrInvalidDisk) ||
		errors.Is(err, unraid.ErrSameDisk) ||
		errors.Is(err, ErrMalformedFlag)
}

func setupLogging(level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()
}

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	setupSignalHandlers(cancel)

	policy, err := buildPolicy(cmd)
	if err != nil {
		return err
	}

	setupLogging(logLevel(policy.Verbosity))

	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}

	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})
	siteConfig, err := configHandler.EstablishSiteConfig(configuration.SiteConfigFile, configuration.SiteConfig{
		BasePath:   unraid.BasePathMounts,
		ExtraPools: []string{unraid.CachePoolName},
	})
	if err != nil {
		slog.Warn("Ignoring unreadable site configuration.",
			"path", configuration.SiteConfigFile,
			"err", err,
		)
	}

	unraidHandler := unraid.NewHandler(osProvider, siteConfig.BasePath, siteConfig.ExtraPools)

	src, dst, err := unraidHandler.EstablishDiskPair(args[1], args[2])
	if err != nil {
		return err
	}

	pathingHandler := pathing.NewHandler(osProvider, siteConfig.BasePath)

	sharePath, err := pathingHandler.EstablishSharePath(args[0], src)
	if err != nil {
		return err
	}

	fsHandler, err := filesystem.NewHandler(osProvider, unixProvider)
	if err != nil {
		return fmt.Errorf("failed to establish filesystem handler: %w", err)
	}

	moveHandler := move.NewHandler(fsHandler, osProvider, unixProvider)
	reporter := report.NewReporter(os.Stdout, policy)

	app := NewApp(policy, src, dst, sharePath, fsHandler, moveHandler, reporter)

	if err := app.Launch(ctx); err != nil {
		return err
	}

	return nil
}

// logLevel maps the reporter verbosity onto the ambient log level.
func logLevel(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelError
	case verbosity == 1:
		return slog.LevelWarn
	case verbosity == 2:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// buildPolicy compiles the command line into the immutable [schema.Policy]
// snapshot of this run. When -t and -f are both given, the dry run wins.
func buildPolicy(cmd *cobra.Command) (*schema.Policy, error) {
	flags := cmd.Flags()

	test, _ := flags.GetBool("test")
	force, _ := flags.GetBool("force")
	keepSource, _ := flags.GetBool("keepsource")
	links, _ := flags.GetBool("links")
	clobber, _ := flags.GetBool("clobber")
	verbose, _ := flags.GetCount("verbose")
	quiet, _ := flags.GetCount("quiet")

	policy := &schema.Policy{
		DryRun:       test || !force,
		KeepSource:   keepSource,
		CopySymlinks: links,
		Clobber:      clobber,
		Verbosity:    1 + verbose - quiet,
	}

	if flags.Changed("small") {
		smallKB, _ := flags.GetUint64("small")
		if smallKB == 0 {
			return nil, fmt.Errorf("%w: -s must be a positive number of kilobytes", ErrMalformedFlag)
		}
		policy.MaxSizeBytes = smallKB * 1024
	}

	if flags.Changed("extension") {
		list, _ := flags.GetStringSlice("extension")

		extensions := make(map[string]struct{}, len(list))
		for _, ext := range list {
			ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
			if ext != "" {
				extensions[ext] = struct{}{}
			}
		}
		if len(extensions) == 0 {
			return nil, fmt.Errorf("%w: -e requires a comma-separated extension list", ErrMalformedFlag)
		}
		policy.Extensions = extensions
	}

	return policy, nil
}
