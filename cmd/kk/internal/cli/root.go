// Package cli implements the kk command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/kk/cmd/kk/internal/scan"
	"github.com/albertocavalcante/kk/internal/log"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1 // usage, configuration and other failures
	ExitPath  = 2 // a target does not exist or is not a directory
)

// rootFlags holds every flag of one command instance.
type rootFlags struct {
	verbosity int
	logFormat string

	noVCS     bool
	all       bool
	almostAll bool
	dirsOnly  bool
	noDirs    bool

	human   bool
	si      bool
	color   string
	format  string
	workers int

	reverse        bool
	sortWord       string
	sortSize       bool
	sortTime       bool
	sortCtime      bool
	sortAtime      bool
	unsorted       bool
	groupDirsFirst bool
	ignoreCase     bool

	help    bool
	version bool
}

// newRootCmd builds a fresh command so repeated runs never share flag state.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "kk [flags] [path...]",
		Short: "Git-aware directory listing",
		Long: `kk lists directories like 'ls -l' and shows the git status of every entry.

Each row carries a status marker:
  |  clean       +  modified    *  staged
  ?  untracked   !  ignored

Directories take the most severe status of their contents. Use --no-vcs to
skip git entirely.`,
		Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initLogging(flags, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags, args)
		},
	}
	cmd.SetVersionTemplate("kk {{.Version}}\n")

	// Global flags (persistent across all commands)
	cmd.PersistentFlags().IntVarP(&flags.verbosity, "verbosity", "v", log.VerbosityWarn,
		"Verbosity level (0=error, 1=warn, 2=info, 3=debug, 4=trace)")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", log.FormatPlain,
		"Log format (plain, text, json)")

	f := cmd.Flags()
	// -h is taken by --human, so help and version are declared without shorthands
	f.BoolVar(&flags.help, "help", false, "Help for kk")
	f.BoolVar(&flags.version, "version", false, "Print version information")

	f.BoolVar(&flags.noVCS, "no-vcs", false, "Do not query git status")
	f.BoolVarP(&flags.all, "all", "a", false, "Show entries whose names begin with a dot")
	f.BoolVarP(&flags.almostAll, "almost-all", "A", false, "Same as --all")
	f.BoolVarP(&flags.dirsOnly, "directory", "d", false, "List only directories")
	f.BoolVarP(&flags.noDirs, "no-directory", "n", false, "Do not list directories")

	f.BoolVarP(&flags.human, "human", "h", false, "Print sizes like 1K 234M 2G")
	f.BoolVar(&flags.si, "si", false, "Like --human, but use powers of 1000")
	f.StringVar(&flags.color, "color", "auto", "Colorize output: auto, always, never")
	f.Lookup("color").NoOptDefVal = "always"
	f.StringVar(&flags.format, "format", "text", "Output format: text, json, yaml")
	f.IntVar(&flags.workers, "workers", 0, "Concurrent stat calls (0 = automatic)")

	f.BoolVarP(&flags.reverse, "reverse", "r", false, "Reverse the sort order")
	f.StringVar(&flags.sortWord, "sort", "", "Sort by WORD: name, none, size, time, ctime, atime")
	f.BoolVarP(&flags.sortSize, "sort-size", "S", false, "Sort by size, largest first")
	f.BoolVarP(&flags.sortTime, "sort-time", "t", false, "Sort by modification time, newest first")
	f.BoolVarP(&flags.sortCtime, "sort-ctime", "c", false, "Sort by change time, newest first")
	f.BoolVarP(&flags.sortAtime, "sort-atime", "u", false, "Sort by access time, newest first")
	f.BoolVarP(&flags.unsorted, "unsorted", "U", false, "Do not sort; list in directory order")
	f.BoolVar(&flags.groupDirsFirst, "group-directories-first", true, "List directories before files")
	f.BoolVar(&flags.ignoreCase, "ignore-case", false, "Sort names case-insensitively")

	return cmd
}

// initLogging applies CLI flags to the logger.
// This runs after flags are parsed but before command execution.
func initLogging(flags *rootFlags, w io.Writer) {
	log.InitWithOutput(flags.verbosity, flags.logFormat, w)
}

// Execute runs kk with the process arguments and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes kk and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "kk: %v\n", err)
		return exitCode(err)
	}
	return ExitOK
}

func exitCode(err error) int {
	if errors.Is(err, scan.ErrPathNotFound) || errors.Is(err, scan.ErrNotADirectory) {
		return ExitPath
	}
	return ExitError
}

// RootCmd returns a new root command for testing.
func RootCmd() *cobra.Command {
	return newRootCmd()
}
