package buildprops

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/buildprops/internal/version"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/logging"
	"github.com/arthur-debert/buildprops/pkg/output"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbosity      int
	configPath     string
	projectVersion string
	pomPath        string
	snapshot       bool
	release        bool
	defines        []string
	groups         []string
	skip           bool
	format         string
	output         string
	noColor        bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "buildprops",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.configPath, "config", "c", "", MsgFlagConfig)
	flags.StringVar(&opts.projectVersion, "project-version", "", MsgFlagVersion)
	flags.StringVar(&opts.pomPath, "pom", "", MsgFlagPOM)
	flags.BoolVar(&opts.snapshot, "snapshot", false, MsgFlagSnapshot)
	flags.BoolVar(&opts.release, "release", false, MsgFlagRelease)
	flags.StringArrayVarP(&opts.defines, "define", "D", nil, MsgFlagDefine)
	flags.StringSliceVarP(&opts.groups, "groups", "g", nil, MsgFlagGroups)
	flags.BoolVar(&opts.skip, "skip", false, MsgFlagSkip)
	flags.StringVarP(&opts.format, "format", "f", string(output.FormatProperties),
		fmt.Sprintf(MsgFlagFormat, strings.Join(output.Formats(), ", ")))
	flags.StringVarP(&opts.output, "output", "o", "", MsgFlagOutput)
	flags.BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.MarkFlagsMutuallyExclusive("snapshot", "release")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return output.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Add all commands
	rootCmd.AddCommand(newGetCmd(opts))
	rootCmd.AddCommand(newIncCmd(opts))
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newTransformersCmd(opts))
	rootCmd.AddCommand(newMacrosCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))

	return rootCmd
}
