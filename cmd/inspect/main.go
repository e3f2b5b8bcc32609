// Command inspect decodes, compares, and renders extension packages.
//
// Usage:
//
//	inspect ls <archive>
//	inspect extract <archive> <dir>
//	inspect tree <old-dir> <new-dir>
//	inspect diff <old-file> <new-file>
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/extpack/inspect"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	configPath string
	style      string
	workers    int
	excludes   []string
	verbose    bool
}

// inspector builds an Inspector from the config file merged with flags.
// Flags win over the file.
func (a *app) inspector() (*inspect.Inspector, error) {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.style != "" {
		cfg.Style = a.style
	}
	if a.workers > 0 {
		cfg.Workers = a.workers
	}
	if len(a.excludes) > 0 {
		cfg.Exclude = a.excludes
	}

	opts := []inspect.Option{
		inspect.WithStyle(cfg.Style),
		inspect.WithWorkers(cfg.Workers),
		inspect.WithExcludes(cfg.Exclude...),
	}
	if a.verbose {
		opts = append(opts, inspect.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))))
	}
	return inspect.New(opts...), nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "inspect",
		Short:         "Decode, compare, and render extension packages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "inspect.yaml", "config file path")
	root.PersistentFlags().StringVar(&a.style, "style", "", "syntax highlight style")
	root.PersistentFlags().IntVarP(&a.workers, "workers", "w", 0, "concurrent hashing workers")
	root.PersistentFlags().StringSliceVar(&a.excludes, "exclude", nil, "base-name glob patterns to skip")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug detail to stderr")

	root.AddCommand(newLsCmd(a), newExtractCmd(a), newTreeCmd(a), newDiffCmd(a))
	return root
}

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls <archive>",
		Short: "List the files inside an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := a.inspector()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			tree, err := ins.DecodeArchive(f)
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(tree))
			for p := range tree {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "%8d  %s\n", len(tree[p]), p)
			}
			return nil
		},
	}
}

func newExtractCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <archive> <dir>",
		Short: "Extract an archive into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := a.inspector()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			return ins.ExtractArchive(f, args[1])
		},
	}
}

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <old-dir> <new-dir>",
		Short: "Show the classified change tree between two directories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := a.inspector()
			if err != nil {
				return err
			}

			diff, err := ins.CompareDirs(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if diff.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "no changes")
				return nil
			}
			printTree(cmd.OutOrStdout(), diff.Items, 0)
			return nil
		},
	}
}

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old-file> <new-file>",
		Short: "Render a highlighted side-by-side file diff",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ins, err := a.inspector()
			if err != nil {
				return err
			}

			fd, err := ins.DiffFile(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(fd.Old) > 0 {
				fmt.Fprintf(out, "--- %s\n", args[0])
				printFragments(out, fd.Old)
				fmt.Fprintln(out)
			}
			if len(fd.New) > 0 {
				fmt.Fprintf(out, "+++ %s\n", args[1])
				printFragments(out, fd.New)
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
