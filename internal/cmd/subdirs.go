package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/pathsieve/internal/fileutil"
	"github.com/harrison/pathsieve/internal/logger"
	"github.com/harrison/pathsieve/internal/pathspec"
)

// NewSubdirsCommand creates and returns the subdirs subcommand
func NewSubdirsCommand() *cobra.Command {
	var maxDepth int
	var includeHidden bool
	var excludeDirs []string
	var specs []string

	cmd := &cobra.Command{
		Use:   "subdirs [root]",
		Short: "List subdirectories of a tree, optionally filtered by pathspecs",
		Long: `Walk a directory tree and print its subdirectories in the
slash-separated relative form used by pathspec translation.

With --spec, only subdirectories where at least one of the given
pathspecs could still match something are printed. This answers the
question "which scopes do these specs reach into?" without touching
file contents.

Exit code: 0 on success, 1 on scan failure or invalid pathspec`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigForCommand(cmd)
			if err != nil {
				return err
			}

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			opts := fileutil.ScanOptions{
				ExcludeDirs:   excludeDirs,
				MaxDepth:      maxDepth,
				IncludeHidden: includeHidden,
			}

			log := newCommandLogger(cmd, cfg)
			return runSubdirs(root, opts, specs, log, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "limit recursion depth (0 = unlimited)")
	cmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "include directories starting with \".\"")
	cmd.Flags().StringSliceVar(&excludeDirs, "exclude", nil, "directory names to skip")
	cmd.Flags().StringArrayVar(&specs, "spec", nil, "only list subdirectories these pathspecs reach into")

	return cmd
}

func runSubdirs(root string, opts fileutil.ScanOptions, specs []string, log logger.Logger, output io.Writer) error {
	var collection pathspec.Collection
	if len(specs) > 0 {
		var err error
		collection, err = pathspec.ParseCollection(specs...)
		if err != nil {
			return err
		}
	}

	result, err := fileutil.ScanSubdirs(root, opts)
	if err != nil {
		return err
	}

	for _, scanErr := range result.Errors {
		log.LogWarn(scanErr.Error())
	}
	log.LogDebug(fmt.Sprintf("scanned %d subdirectories under %s", len(result.Dirs), root))

	for _, dir := range result.Dirs {
		if len(specs) > 0 && !collection.AnyMatchSubdir(dir) {
			continue
		}
		fmt.Fprintln(output, dir)
	}

	return nil
}
