package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/pathsieve/internal/config"
	"github.com/harrison/pathsieve/internal/pathspec"
)

// NewTranslateCommand creates and returns the translate subcommand
func NewTranslateCommand() *cobra.Command {
	var subdir string
	var group string

	cmd := &cobra.Command{
		Use:   "translate --subdir <dir> [<pathspec>...]",
		Short: "Rewrite pathspecs for a subdirectory scope",
		Long: `Rewrite pathspec arguments so they apply from within a
subdirectory of the original working tree.

Each input spec may translate to zero, one, or several output specs.
Specs that cannot apply inside the subdirectory produce no output.
Top-anchored specs (:(top) or :/) pass through unchanged since they
are interpreted from the tree root regardless of scope.

Pathspecs may be given as arguments or pulled from a named group in
the configuration file via --group.

Exit code: 0 on success, 1 if any argument is invalid`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigForCommand(cmd)
			if err != nil {
				return err
			}
			return runTranslate(args, subdir, group, cfg, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&subdir, "subdir", "", "subdirectory to translate into (slash-separated, relative)")
	cmd.Flags().StringVar(&group, "group", "", "take pathspecs from this config group")
	cmd.MarkFlagRequired("subdir")

	return cmd
}

func runTranslate(args []string, subdir, group string, cfg *config.Config, output io.Writer) error {
	if group != "" {
		specs, ok := cfg.Group(group)
		if !ok {
			return fmt.Errorf("group %q not found in configuration", group)
		}
		args = append(specs, args...)
	}
	if len(args) == 0 {
		return fmt.Errorf("no pathspecs given: pass arguments or --group")
	}

	collection, err := pathspec.ParseCollection(args...)
	if err != nil {
		return err
	}

	translated := collection.ForSubdir(normalizeSubdir(subdir))
	for _, arg := range translated.ArgList() {
		fmt.Fprintln(output, arg)
	}

	return nil
}

// normalizeSubdir strips a trailing slash so callers can pass either
// "a/b" or "a/b/".
func normalizeSubdir(subdir string) string {
	for len(subdir) > 0 && subdir[len(subdir)-1] == '/' {
		subdir = subdir[:len(subdir)-1]
	}
	return subdir
}
