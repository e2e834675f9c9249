package buildprops

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/buildprops/internal/version"
	"github.com/arthur-debert/buildprops/pkg/buildctx"
	"github.com/arthur-debert/buildprops/pkg/config"
	"github.com/arthur-debert/buildprops/pkg/core"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/filesystem"
	"github.com/arthur-debert/buildprops/pkg/logging"
	"github.com/arthur-debert/buildprops/pkg/macros"
	"github.com/arthur-debert/buildprops/pkg/output"
	"github.com/arthur-debert/buildprops/pkg/transform"
	"github.com/arthur-debert/buildprops/pkg/types"
)

func newGetCmd(opts *globalOptions) *cobra.Command {
	var persist bool
	cmd := &cobra.Command{
		Use:     "get",
		Short:   MsgGetShort,
		Long:    MsgGetLong,
		Example: MsgGetExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoal(cmd, opts, core.GoalGet, persist)
		},
	}
	cmd.Flags().BoolVar(&persist, "persist", false, MsgFlagPersist)
	return cmd
}

func newIncCmd(opts *globalOptions) *cobra.Command {
	var persist bool
	cmd := &cobra.Command{
		Use:     "inc",
		Short:   MsgIncShort,
		Long:    MsgIncLong,
		Example: MsgIncExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoal(cmd, opts, core.GoalInc, persist)
		},
	}
	cmd.Flags().BoolVar(&persist, "persist", true, MsgFlagPersist)
	return cmd
}

func runGoal(cmd *cobra.Command, opts *globalOptions, goal core.Goal, persist bool) error {
	logger := logging.GetLogger("cmd." + string(goal))

	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	fsys := filesystem.NewOS()
	cfg, err := config.Load(opts.configPath, ".", overrides(cmd, opts))
	if err != nil {
		return err
	}
	ctx, err := buildContext(fsys, opts)
	if err != nil {
		return err
	}

	logger.Info().
		Str("config", cfg.Path).
		Str("kind", ctx.Kind.String()).
		Bool("persist", persist).
		Msg("Starting run")

	result, err := core.Run(core.Options{
		Config:     cfg,
		Context:    ctx,
		Goal:       goal,
		Persist:    persist,
		FileSystem: fsys,
	})
	if err != nil {
		return err
	}
	if result.Skipped {
		_, err := fmt.Fprint(cmd.ErrOrStderr(), MsgSkipped)
		return err
	}

	for _, path := range result.Written {
		logger.Info().Str("path", path).Msg("Property file written")
	}

	return writeOutput(cmd, opts, format, func(w io.Writer, noColor bool) error {
		return output.NewRenderer(w, format, noColor).Render(result.Exports)
	})
}

// overrides returns the definitions file keys set on the command line.
func overrides(cmd *cobra.Command, opts *globalOptions) map[string]interface{} {
	o := map[string]interface{}{}
	if cmd.Flags().Changed("groups") {
		o["active_groups"] = opts.groups
	}
	if cmd.Flags().Changed("skip") {
		o["skip"] = opts.skip
	}
	return o
}

// writeOutput renders to stdout, or to the --output file when given.
func writeOutput(cmd *cobra.Command, opts *globalOptions, format output.Format, render func(io.Writer, bool) error) error {
	if opts.output == "" {
		return render(cmd.OutOrStdout(), opts.noColor)
	}

	var buf bytes.Buffer
	if err := render(&buf, true); err != nil {
		return err
	}
	if dir := filepath.Dir(opts.output); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "could not create folder for %s", opts.output)
		}
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "could not write %s", opts.output).
			WithDetail("path", opts.output)
	}
	log.Debug().Str("path", opts.output).Str("format", string(format)).Msg("Output written")
	_, err := fmt.Fprintf(cmd.ErrOrStderr(), MsgWrittenFile, opts.output)
	return err
}

// buildContext assembles the project model, build kind and build
// properties from the global flags.
func buildContext(fsys types.FS, opts *globalOptions) (*buildctx.Context, error) {
	project := &buildctx.Project{Properties: map[string]string{}}

	pom := opts.pomPath
	if pom == "" {
		if info, err := fsys.Stat("pom.xml"); err == nil && info.Mode().IsRegular() {
			pom = "pom.xml"
		}
	}
	if pom != "" {
		loaded, err := buildctx.LoadPOM(fsys, pom)
		if err != nil {
			return nil, err
		}
		project = loaded
	}
	if opts.projectVersion != "" {
		project.Version = opts.projectVersion
	}

	kind := buildctx.KindForVersion(project.Version)
	switch {
	case opts.snapshot:
		kind = buildctx.Snapshot
	case opts.release:
		kind = buildctx.Release
	}

	ctx := buildctx.New(project, kind)
	for _, define := range opts.defines {
		key, value, found := strings.Cut(define, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrDefine, define)
		}
		if !found {
			value = "true"
		}
		ctx.BuildProperties[key] = value
	}
	return ctx, nil
}

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "init [file]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileNames[0]
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrAlreadyExists, MsgErrInitExists, path).
					WithDetail("path", path)
			}
			if err := os.WriteFile(path, []byte(config.SampleContent()), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "could not write %s", path)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgInitCreated, path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newTransformersCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "transformers",
		Short:   MsgTransformersShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderList(cmd, opts, MsgTitleTrans, transform.Names())
		},
	}
}

func newMacrosCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "macros",
		Short:   MsgMacrosShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := renderList(cmd, opts, MsgTitleMacros, macros.Default.Types()); err != nil {
				return err
			}
			return renderList(cmd, opts, MsgTitleClasses, macros.Default.Classes())
		},
	}
}

func renderList(cmd *cobra.Command, opts *globalOptions, title string, items []string) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	// Listings default to text unless a format was asked for.
	if !cmd.Flags().Changed("format") {
		format = output.FormatText
	}
	return output.NewRenderer(cmd.OutOrStdout(), format, opts.noColor).RenderList(title, items)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionLine, version.Version)
			fmt.Fprintf(out, MsgCommitLine, version.Commit)
			fmt.Fprintf(out, MsgBuiltLine, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(buildprops completion bash)

Zsh:
  $ buildprops completion zsh > "${fpath[1]}/_buildprops"

Fish:
  $ buildprops completion fish | source

PowerShell:
  PS> buildprops completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}

func newManCmd(root *cobra.Command) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "could not create %s", dir)
			}
			return doc.GenManTree(root, ManHeader(), dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)
	return cmd
}

// ManHeader is the header of the generated man pages.
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "BUILDPROPS",
		Section: "1",
		Source:  "buildprops " + version.Version,
		Manual:  "buildprops manual",
	}
}
