package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/albertocavalcante/kk/cmd/kk/internal/listing"
	"github.com/albertocavalcante/kk/cmd/kk/internal/render"
	"github.com/albertocavalcante/kk/cmd/kk/internal/runner"
	"github.com/albertocavalcante/kk/cmd/kk/internal/scan"
	"github.com/albertocavalcante/kk/cmd/kk/internal/vcs"
	"github.com/albertocavalcante/kk/internal/log"
	"github.com/albertocavalcante/kk/pkg/config"
)

var errConflictingFilters = errors.New("-d/--directory and -n/--no-directory cannot be used together")

func runList(cmd *cobra.Command, flags *rootFlags, args []string) error {
	if flags.dirsOnly && flags.noDirs {
		return errConflictingFilters
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	sortKey, err := listing.ParseSortKey(cfg.Sort.Key)
	if err != nil {
		return err
	}
	sortOpts := listing.SortOptions{
		Key:             sortKey,
		Reverse:         config.Bool(cfg.Sort.Reverse),
		CaseInsensitive: config.Bool(cfg.Sort.CaseInsensitive),
		GroupDirsFirst:  config.Bool(cfg.Sort.GroupDirectoriesFirst),
	}

	filter := scan.FilterAll
	switch {
	case flags.dirsOnly:
		filter = scan.FilterDirsOnly
	case flags.noDirs:
		filter = scan.FilterNoDirs
	}

	var provider vcs.Provider
	if cfg.VCSEnabled() {
		provider = vcs.NewGit(runner.New(runner.WithGitPath(cfg.VCS.GitPath)))
	}

	targets := args
	if len(targets) == 0 {
		targets = []string{"."}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("listing", "targets", len(targets), "vcs", cfg.VCSEnabled(), "sort", cfg.Sort.Key, "workers", cfg.Workers())

	listings := make([]*listing.Listing, 0, len(targets))
	for _, path := range targets {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("cannot resolve %s: %w", path, err)
		}
		l, err := listing.Build(ctx, listing.BuildConfig{
			Path: path,
			Scanner: scan.NewScanner(scan.Config{
				Root:       abs,
				ShowHidden: config.Bool(cfg.Display.All),
				Filter:     filter,
				Workers:    cfg.Workers(),
			}),
			Provider: provider,
			Sort:     sortOpts,
		})
		if err != nil {
			return err
		}
		listings = append(listings, l)
	}

	out := cmd.OutOrStdout()
	var buf bytes.Buffer
	err = render.Write(&buf, listings, render.Options{
		Format:  cfg.Display.Format,
		Human:   config.Bool(cfg.Display.Human) || config.Bool(cfg.Display.SI),
		SI:      config.Bool(cfg.Display.SI),
		Color:   render.UseColor(cfg.Display.Color, out),
		Palette: render.PaletteFromEnv(),
	})
	if err != nil {
		return err
	}

	_, err = out.Write(buf.Bytes())
	return err
}

// applyFlags overrides config with the flags the user actually set.
func applyFlags(cmd *cobra.Command, flags *rootFlags, cfg *config.Config) {
	f := cmd.Flags()

	if flags.noVCS {
		enabled := false
		cfg.VCS.Enabled = &enabled
	}
	if anyChanged(f, "all", "almost-all") {
		all := flags.all || flags.almostAll
		cfg.Display.All = &all
	}
	if f.Changed("human") {
		cfg.Display.Human = &flags.human
	}
	if f.Changed("si") {
		cfg.Display.SI = &flags.si
	}
	if f.Changed("color") {
		cfg.Display.Color = flags.color
	}
	if f.Changed("format") {
		cfg.Display.Format = flags.format
	}
	if f.Changed("workers") {
		cfg.Scan.Workers = flags.workers
	}

	if f.Changed("reverse") {
		cfg.Sort.Reverse = &flags.reverse
	}
	if f.Changed("group-directories-first") {
		cfg.Sort.GroupDirectoriesFirst = &flags.groupDirsFirst
	}
	if f.Changed("ignore-case") {
		cfg.Sort.CaseInsensitive = &flags.ignoreCase
	}
	if key := sortKeyFromFlags(flags); key != "" {
		cfg.Sort.Key = key
	}
}

// sortKeyFromFlags resolves the sort word; --sort beats the single-letter
// flags, which are checked in a fixed order.
func sortKeyFromFlags(flags *rootFlags) string {
	switch {
	case flags.sortWord != "":
		return flags.sortWord
	case flags.unsorted:
		return "none"
	case flags.sortSize:
		return "size"
	case flags.sortTime:
		return "time"
	case flags.sortCtime:
		return "ctime"
	case flags.sortAtime:
		return "atime"
	default:
		return ""
	}
}

func anyChanged(f *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if f.Changed(name) {
			return true
		}
	}
	return false
}
