package main

import (
	"io/fs"
	"os"
	"time"

	"github.com/arthur-debert/templater/pkg/config"
	"github.com/arthur-debert/templater/pkg/errors"
	"github.com/arthur-debert/templater/pkg/filesystem"
	"github.com/arthur-debert/templater/pkg/flags"
	"github.com/arthur-debert/templater/pkg/logging"
	"github.com/arthur-debert/templater/pkg/materialize"
	"github.com/arthur-debert/templater/pkg/report"
	"github.com/arthur-debert/templater/pkg/templates"
	"github.com/arthur-debert/templater/pkg/topics"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbosity int
	fromDir   string
	toDir     string

	rootCmd = &cobra.Command{
		Use:   "templater --to <dir> [--from <dir>] <flag>...",
		Short: "Instantiate a project from a conditional template tree",
		Long: `templater copies a template tree to a destination directory,
resolving inline #if/#endif directives against the feature flags you
enable. Directive syntax is stripped from the output; lines whose
conditions do not hold are dropped.

Without --from the bundled template tree is used (or the one under
$XDG_DATA_HOME/templater/templates when present). Positional arguments
are the flags to enable. See "templater syntax" for the directive
grammar.`,
		Args: cobra.MinimumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:          runTemplater,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.Flags().StringVar(&toDir, "to", "", "Destination directory for the generated project")
	rootCmd.Flags().StringVar(&fromDir, "from", "", "Template source directory (default: bundled templates)")
	_ = rootCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(syntaxCmd)
}

func runTemplater(cmd *cobra.Command, args []string) error {
	defer logging.LogDuration(time.Now(), "materialize")

	src, srcName, err := templateSource()
	if err != nil {
		return err
	}
	log.Info().Str("source", srcName).Str("dest", toDir).Msg("Materializing template tree")

	manifest, err := config.Load(src)
	if err != nil {
		return err
	}

	set := flags.NewSet(args...).Union(flags.NewSet(manifest.Flags...))
	usage := flags.NewUsage()

	if err := ensureDestDir(toDir); err != nil {
		return err
	}

	result, err := materialize.New(filesystem.NewOS()).Materialize(src, toDir, manifest, set, usage)
	if err != nil {
		return err
	}

	printRunStatus(result)
	printFlagReport(src, set, usage)
	return nil
}

// templateSource picks the template tree: --from when given, the
// bundled (or XDG-overridden) tree otherwise.
func templateSource() (fs.FS, string, error) {
	if fromDir == "" {
		src, name := templates.Default()
		return src, name, nil
	}

	info, err := os.Stat(fromDir)
	if err != nil {
		return nil, "", errors.Wrap(err, errors.ErrSourceNotFound, "template source directory not found").
			WithDetail("path", fromDir)
	}
	if !info.IsDir() {
		return nil, "", errors.New(errors.ErrInvalidInput, "template source is not a directory").
			WithDetail("path", fromDir)
	}
	return os.DirFS(fromDir), fromDir, nil
}

func ensureDestDir(dest string) error {
	info, err := os.Stat(dest)
	if err == nil {
		if !info.IsDir() {
			return errors.New(errors.ErrInvalidInput, "destination exists but is not a directory").
				WithDetail("path", dest)
		}
		return nil
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create destination directory").
			WithDetail("path", dest)
	}
	return nil
}

// printRunStatus reports per-file outcomes at -v and a one-line
// summary always.
func printRunStatus(result *materialize.Result) {
	if verbosity >= 1 {
		for _, file := range result.Files {
			switch file.Status {
			case materialize.StatusWritten:
				pterm.Success.Printfln("Wrote %s", file.Path)
			case materialize.StatusSkipped:
				pterm.Info.Printfln("Skipped (empty): %s", file.Path)
			}
		}
	}
	pterm.Info.Printfln("%d files written, %d skipped", result.Written, result.Skipped)
}

// printFlagReport warns about enabled flags no condition mentioned,
// with closest-match suggestions from a tree-wide scan.
func printFlagReport(src fs.FS, set *flags.Set, usage *flags.Usage) {
	unused := usage.Unused(set)
	if len(unused) == 0 {
		return
	}

	all, err := materialize.ScanConditions(src)
	if err != nil {
		log.Warn().Err(err).Msg("Could not scan template conditions for suggestions")
	}

	rpt := report.Build(set, usage, all)
	if out := rpt.Render(report.IsTerminal(os.Stdout)); out != "" {
		pterm.Println()
		pterm.Print(out)
	}
}

var syntaxCmd = &cobra.Command{
	Use:   "syntax",
	Short: "Explain the directive syntax",
	Long:  `Render the directive syntax reference for template authors.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := topics.Render("syntax")
		if err != nil {
			return err
		}
		cmd.Print(out)
		return nil
	},
}
