package core

import (
	"time"

	"github.com/arthur-debert/buildprops/pkg/buildctx"
	"github.com/arthur-debert/buildprops/pkg/config"
	"github.com/arthur-debert/buildprops/pkg/definitions"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/fields"
	"github.com/arthur-debert/buildprops/pkg/filesystem"
	"github.com/arthur-debert/buildprops/pkg/groups"
	"github.com/arthur-debert/buildprops/pkg/interpolate"
	"github.com/arthur-debert/buildprops/pkg/logging"
	"github.com/arthur-debert/buildprops/pkg/macros"
	"github.com/arthur-debert/buildprops/pkg/store"
	"github.com/arthur-debert/buildprops/pkg/types"
)

// Goal selects what a run does after resolving values.
type Goal string

const (
	// GoalGet resolves and publishes values.
	GoalGet Goal = "get"
	// GoalInc additionally increments every number field.
	GoalInc Goal = "inc"
)

// Options configures a run.
type Options struct {
	Config  *config.Config
	Context *buildctx.Context
	Goal    Goal
	Persist bool

	// FileSystem defaults to the OS filesystem.
	FileSystem types.FS
	// Macros defaults to macros.Default.
	Macros *macros.Registry
	// Now defaults to time.Now.
	Now func() time.Time
}

// Result describes a finished run.
type Result struct {
	Goal    Goal
	Skipped bool
	// Values holds every present value by definition id.
	Values map[string]string
	// Exports are the published pairs in publication order.
	Exports []buildctx.Export
	// Written lists the property files persisted.
	Written []string
	// Warnings holds persistence problems that did not stop the run.
	Warnings []error
}

type evaluated struct {
	def   definitions.Definition
	field fields.Field
}

// Run executes one build.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("core")
	defer logging.LogOperationStart(logger, "run")()

	if opts.Config == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no configuration given")
	}
	if opts.Goal == "" {
		opts.Goal = GoalGet
	}
	if opts.Goal != GoalGet && opts.Goal != GoalInc {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown goal %q", opts.Goal).
			WithDetail("goal", string(opts.Goal))
	}

	result := &Result{Goal: opts.Goal, Values: map[string]string{}}
	if opts.Config.Skip {
		logger.Debug().Msg("Skipping execution")
		result.Skipped = true
		return result, nil
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = buildctx.New(nil, buildctx.Release)
	}
	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	logger.Debug().
		Str("goal", string(opts.Goal)).
		Str("kind", ctx.Kind.String()).
		Bool("persist", opts.Persist).
		Str("duplicate", opts.Config.OnDuplicateProperty.String()).
		Str("missing", opts.Config.OnMissingProperty.String()).
		Strs("projectProperties", ctx.Project.PropertyNames()).
		Msg("Starting run")

	st := store.New(fsys)
	env := fields.Env{Macros: opts.Macros, Context: ctx, Now: opts.Now}

	// Step 1: definitions
	var evaluatedFields []evaluated
	for _, def := range opts.Config.Definitions() {
		base := def.Common()
		if base.Skip {
			logger.Debug().Str("id", base.ID).Msg("Skipping definition")
			continue
		}

		field, err := evaluate(st, def, env)
		if err != nil {
			return nil, err
		}
		evaluatedFields = append(evaluatedFields, evaluated{def: def, field: field})

		value, present, err := field.Value()
		if err != nil {
			return nil, err
		}
		if present {
			result.Values[field.ID()] = value
		}

		// Definitions publish under their id. The property name only keys
		// the backing file, several definitions may share one.
		if field.Exported() {
			ctx.Export(field.ID(), value)
			logger.Debug().Str("name", field.ID()).Str("value", value).Msg("Exporting property")
		} else {
			logger.Debug().Str("name", field.ID()).Str("value", value).Bool("present", present).Msg("Property")
		}
	}

	// Step 2: property groups
	for _, g := range opts.Config.Groups {
		if err := g.Check(); err != nil {
			return nil, err
		}
	}
	ip := interpolate.New(Sources(result.Values, ctx)...)
	if err := groups.Resolve(opts.Config.Groups, opts.Config.ActiveGroups, ctx, ip); err != nil {
		return nil, err
	}

	// Step 3: goal
	if opts.Goal == GoalInc {
		for _, ev := range evaluatedFields {
			number, ok := ev.field.(*fields.Number)
			if !ok {
				continue
			}
			if err := number.Increment(); err != nil {
				return nil, err
			}
			logger.Info().Str("id", number.ID()).Msg("Incremented number")
		}
	}

	result.Exports = ctx.Exports()

	// Step 4: persist
	if opts.Persist {
		report, err := st.Persist()
		if report != nil {
			result.Written = report.Written
			result.Warnings = report.Warnings
		}
		for _, w := range result.Warnings {
			logger.Warn().Err(w).Msg("Persistence warning")
		}
		if err != nil {
			return nil, err
		}
	}

	logger.Info().
		Int("values", len(result.Values)).
		Int("exports", len(result.Exports)).
		Int("written", len(result.Written)).
		Msg("Run finished")
	return result, nil
}

func evaluate(st *store.Store, def definitions.Definition, env fields.Env) (fields.Field, error) {
	if err := def.Check(); err != nil {
		return nil, err
	}
	provider, err := st.Provider(def)
	if err != nil {
		return nil, err
	}
	return fields.New(def, provider, env)
}

// Sources returns the interpolation sources of a run, highest precedence
// first.
func Sources(values map[string]string, ctx *buildctx.Context) []interpolate.Source {
	return []interpolate.Source{
		interpolate.MapSource(values),
		interpolate.PrefixedSource{
			Prefixes:        interpolate.SynonymPrefixes,
			Source:          interpolate.SourceFunc(ctx.Project.Lookup),
			AllowUnprefixed: true,
		},
		interpolate.SourceFunc(ctx.BuildProperty),
		interpolate.EnvSource{Prefix: "env.", Getenv: ctx.Getenv},
	}
}
