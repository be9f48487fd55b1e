package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"decomment/internal/config"
	"decomment/internal/driver"
	"decomment/internal/observ"
	"decomment/internal/source"
)

const cacheApp = "decomment"

// fileStore is where the clean command reads and writes files.
var fileStore driver.FileStore = source.Disk{}

func addCleanFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("check", false, "report files that contain comments without rewriting them")
	cmd.Flags().Bool("stdout", false, "print cleaned code to stdout instead of rewriting files")
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().Bool("strict", false, "exit with an error when any file could not be processed")
	cmd.Flags().String("ui", "off", "show live progress (auto|on|off)")
	cmd.Flags().String("config", "", "path to decomment.toml (default: nearest one above the first path)")
	cmd.Flags().StringSlice("ext", nil, "file extensions to process (default .swift)")
	cmd.Flags().StringSlice("exclude", nil, "glob of paths to skip, relative to each root (repeatable)")
	cmd.Flags().Int("jobs", 0, "number of files processed in parallel (0 = GOMAXPROCS)")
	cmd.Flags().Bool("cache", false, "skip files whose content was already seen without comments")
	cmd.Flags().Bool("clear-cache", false, "drop the clean-file cache before running")
}

type cleanFlags struct {
	check      bool
	stdout     bool
	format     string
	strict     bool
	ui         uiMode
	configPath string
	quiet      bool
	timings    bool
	clearCache bool
	overrides  config.Overrides
}

func readCleanFlags(cmd *cobra.Command) (cleanFlags, error) {
	var f cleanFlags
	var err error
	flags := cmd.Flags()

	if f.check, err = flags.GetBool("check"); err != nil {
		return f, err
	}
	if f.stdout, err = flags.GetBool("stdout"); err != nil {
		return f, err
	}
	if f.format, err = flags.GetString("format"); err != nil {
		return f, err
	}
	if f.strict, err = flags.GetBool("strict"); err != nil {
		return f, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode("ui", uiValue); err != nil {
		return f, err
	}
	if f.configPath, err = flags.GetString("config"); err != nil {
		return f, err
	}
	if f.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return f, err
	}
	if f.overrides.Extensions, err = flags.GetStringSlice("ext"); err != nil {
		return f, err
	}
	if f.overrides.Exclude, err = flags.GetStringSlice("exclude"); err != nil {
		return f, err
	}
	if flags.Changed("jobs") {
		jobs, err := flags.GetInt("jobs")
		if err != nil {
			return f, err
		}
		f.overrides.Jobs = &jobs
	}
	if flags.Changed("cache") {
		cache, err := flags.GetBool("cache")
		if err != nil {
			return f, err
		}
		f.overrides.Cache = &cache
	}

	root := cmd.Root().PersistentFlags()
	if f.quiet, err = root.GetBool("quiet"); err != nil {
		return f, err
	}
	if f.timings, err = root.GetBool("timings"); err != nil {
		return f, err
	}
	colorValue, err := root.GetString("color")
	if err != nil {
		return f, err
	}
	if err := configureColor(colorValue); err != nil {
		return f, err
	}

	if f.stdout && f.check {
		return f, fmt.Errorf("--stdout cannot be used with --check")
	}
	if f.stdout && f.format != "text" {
		return f, fmt.Errorf("--stdout is only supported with text output")
	}
	if f.format != "text" && f.format != "json" {
		return f, fmt.Errorf("unsupported output format %q", f.format)
	}
	return f, nil
}

func (f cleanFlags) mode() driver.Mode {
	switch {
	case f.check:
		return driver.ModeCheck
	case f.stdout:
		return driver.ModeStdout
	default:
		return driver.ModeWrite
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	flags, err := readCleanFlags(cmd)
	if err != nil {
		return err
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	timer := observ.NewTimer()

	stopConfig := timer.Track("config")
	cfg, err := config.Resolve(args[0], flags.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Apply(flags.overrides); err != nil {
		return err
	}
	stopConfig(cfg.Path)

	opts := driver.Options{
		Extensions: cfg.Scan.Extensions,
		Exclude:    cfg.Scan.Exclude,
		Jobs:       cfg.JobCount(),
		Mode:       flags.mode(),
		Store:      fileStore,
	}
	if cfg.Run.Cache || flags.clearCache {
		cache, err := driver.OpenCleanCache(cacheApp)
		if err != nil {
			fmt.Fprintf(stderr, "warning: clean-file cache disabled: %v\n", err)
		} else {
			if flags.clearCache {
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("failed to clear cache: %w", err)
				}
			}
			if cfg.Run.Cache {
				opts.Cache = cache
			}
		}
	}

	stopCollect := timer.Track("collect")
	list, err := driver.CollectFiles(cmd.Context(), args, opts.Extensions, opts.Exclude)
	if err != nil {
		return err
	}
	stopCollect(fmt.Sprintf("%d files", len(list.Files)))

	useUI := flags.format == "text" && !flags.stdout && !flags.quiet &&
		len(list.Files) > 0 && shouldUseTUI(flags.ui)

	stopClean := timer.Track("clean")
	var results []driver.Result
	var runErr error
	if useUI {
		results, runErr = runCleanWithUI(cmd.Context(), stdout, "decomment", list, opts)
	} else {
		results, runErr = driver.CleanList(cmd.Context(), list, opts)
	}
	sum := summarize(results)
	stopClean(fmt.Sprintf("%d cleaned", sum.changed))

	stopReport := timer.Track("report")
	switch {
	case flags.stdout:
		renderStdout(stdout, stderr, results)
	case flags.format == "json":
		if err := renderJSON(stdout, results, flags.check); err != nil {
			return err
		}
	default:
		renderText(stdout, stderr, results, textOptions{
			check:      flags.check,
			quiet:      flags.quiet,
			errorsOnly: useUI,
		})
		if !flags.quiet {
			renderSummary(stdout, sum, flags.check)
		}
	}
	stopReport("")

	if flags.timings {
		if err := timer.WriteSummary(stderr); err != nil {
			return err
		}
	}

	// interrupted runs still report the files that were already rewritten
	if runErr != nil {
		return runErr
	}
	if flags.check && sum.changed > 0 {
		return fmt.Errorf("check: %d file(s) contain comments", sum.changed)
	}
	if flags.strict && sum.errors > 0 {
		return fmt.Errorf("failed to process %d file(s)", sum.errors)
	}
	return nil
}
