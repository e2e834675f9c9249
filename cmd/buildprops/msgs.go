package buildprops

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort         = "Generate and persist derived build properties"
	MsgGetShort          = "Resolve and print build properties"
	MsgIncShort          = "Resolve build properties and increment numbers"
	MsgTransformersShort = "List the value transformers"
	MsgMacrosShort       = "List the registered macros"
	MsgInitShort         = "Create an example definitions file"
	MsgVersionShort      = "Print version information"
	MsgCompletionShort   = "Generate shell completion script"
	MsgManShort          = "Generate man pages"

	// Status messages
	MsgSkipped      = "Execution skipped by configuration.\n"
	MsgInitCreated  = "Created %s\n"
	MsgWrittenFile  = "Wrote %s\n"
	MsgVersionLine  = "buildprops version %s\n"
	MsgCommitLine   = "  commit: %s\n"
	MsgBuiltLine    = "  built:  %s\n"
	MsgTitleMacros  = "Macro types"
	MsgTitleClasses = "Macro classes"
	MsgTitleTrans   = "Transformers"

	// Error messages
	MsgErrNoCommand  = "no command specified"
	MsgErrDefine     = "invalid build property %q, expected key=value"
	MsgErrInitExists = "%s already exists, use --force to overwrite it"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Definitions file (default: discovered in the current directory)"
	MsgFlagVersion  = "Project version, overrides the one read from the pom"
	MsgFlagPOM      = "Read the project model from this pom.xml (default: ./pom.xml when present)"
	MsgFlagSnapshot = "Treat the build as a snapshot build"
	MsgFlagRelease  = "Treat the build as a release build"
	MsgFlagDefine   = "Build property, key=value (repeatable)"
	MsgFlagGroups   = "Active groups, replacing active_groups of the definitions file"
	MsgFlagSkip     = "Skip the run"
	MsgFlagFormat   = "Output format: %s"
	MsgFlagOutput   = "Write the output to this file instead of stdout"
	MsgFlagNoColor  = "Disable colours in text output"
	MsgFlagPersist  = "Write the property files"
	MsgFlagForce    = "Overwrite an existing file"
	MsgFlagManDir   = "Directory to write the man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/get-long.txt
	msgGetLongRaw string
	MsgGetLong    = strings.TrimSpace(msgGetLongRaw)

	//go:embed msgs/get-example.txt
	msgGetExampleRaw string
	MsgGetExample    = strings.TrimRight(msgGetExampleRaw, "\n")

	//go:embed msgs/inc-long.txt
	msgIncLongRaw string
	MsgIncLong    = strings.TrimSpace(msgIncLongRaw)

	//go:embed msgs/inc-example.txt
	msgIncExampleRaw string
	MsgIncExample    = strings.TrimRight(msgIncExampleRaw, "\n")

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)
)
