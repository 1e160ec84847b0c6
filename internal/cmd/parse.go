package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/pathsieve/internal/pathspec"
)

// NewParseCommand creates and returns the parse subcommand
func NewParseCommand() *cobra.Command {
	var canonical bool

	cmd := &cobra.Command{
		Use:   "parse <pathspec>...",
		Short: "Parse pathspec arguments and show their components",
		Long: `Parse one or more pathspec arguments, checking for:
  - Valid long-form magic syntax (:(type1,type2)pattern)
  - Valid short-form magic (:/ :! :^)
  - Conflicting spectypes (glob with literal)

For each valid pathspec the spectypes, directory prefix, wildcard
pattern, and canonical serialization are printed.

Exit code: 0 if all parse, 1 if any argument is invalid`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args, canonical, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&canonical, "canonical", false, "print only the canonical form, one per line")

	return cmd
}

func runParse(args []string, canonical bool, output io.Writer) error {
	var firstErr error

	for _, arg := range args {
		spec, err := pathspec.Parse(arg)
		if err != nil {
			fmt.Fprintf(output, "%s: %v\n", arg, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if canonical {
			fmt.Fprintln(output, spec.String())
			continue
		}

		printSpec(output, arg, spec)
	}

	return firstErr
}

func printSpec(output io.Writer, arg string, spec pathspec.PathSpec) {
	fmt.Fprintln(output, arg)

	types := spec.SpecTypes()
	if len(types) == 0 {
		fmt.Fprintln(output, "  spectypes: (none)")
	} else {
		fmt.Fprintf(output, "  spectypes: %s\n", strings.Join(types, ", "))
	}

	if spec.DirPrefix() == "" {
		fmt.Fprintln(output, "  dirprefix: (none)")
	} else {
		fmt.Fprintf(output, "  dirprefix: %s\n", spec.DirPrefix())
	}

	fmt.Fprintf(output, "  pattern:   %s\n", spec.Pattern())
	fmt.Fprintf(output, "  canonical: %s\n", spec.String())
}
