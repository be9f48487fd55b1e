package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"decomment/internal/version"
)

// newRootCmd builds the decomment command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "decomment [flags] <path> [path...]",
		Short: "Strip // and /* */ comments from source files",
		Long: `decomment walks the given directories, strips line and (nested) block comments
from every matching source file and rewrites the files that changed.
String literals, including triple-quoted ones, are never touched.`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runClean,
		Version: version.Version,
	}

	addCleanFlags(rootCmd)
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	return rootCmd
}

// main runs the root command; any returned error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
