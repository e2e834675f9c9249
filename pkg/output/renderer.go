package output

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/arthur-debert/buildprops/pkg/buildctx"
	"github.com/arthur-debert/buildprops/pkg/errors"
	"github.com/arthur-debert/buildprops/pkg/logging"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Renderer writes exports and listings in one format.
type Renderer struct {
	writer io.Writer
	format Format
	color  bool
	styles styles
}

type styles struct {
	name    lipgloss.Style
	value   lipgloss.Style
	empty   lipgloss.Style
	heading lipgloss.Style
	item    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, color bool) styles {
	if !color {
		plain := r.NewStyle()
		return styles{name: plain, value: plain, empty: plain, heading: plain, item: plain}
	}
	return styles{
		name:    r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FAFFF"}),
		value:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1C1C1C", Dark: "#EEEEEE"}),
		empty:   r.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}),
		heading: r.NewStyle().Bold(true).Underline(true),
		item:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#005F00", Dark: "#87D787"}),
	}
}

// ColorEnabled reports whether output to w should be coloured.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewRenderer creates a renderer writing format to w.
func NewRenderer(w io.Writer, format Format, noColor bool) *Renderer {
	color := format == FormatText && ColorEnabled(w, noColor)

	logger := logging.GetLogger("output")
	logger.Debug().
		Str("format", string(format)).
		Bool("color", color).
		Msg("Creating renderer")

	return &Renderer{
		writer: w,
		format: format,
		color:  color,
		styles: newStyles(lipgloss.NewRenderer(w), color),
	}
}

// Render writes the exports.
func (r *Renderer) Render(exports []buildctx.Export) error {
	var err error
	switch r.format {
	case FormatProperties:
		err = writeProperties(r.writer, exports)
	case FormatJSON:
		err = writeJSON(r.writer, exports)
	case FormatYAML:
		err = writeYAML(r.writer, exports)
	case FormatTOML:
		err = writeTOML(r.writer, exports)
	case FormatEnv:
		err = writeEnv(r.writer, exports)
	case FormatText:
		err = r.renderText(exports)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown output format %q", r.format)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to render %s output", r.format)
	}
	return nil
}

func (r *Renderer) renderText(exports []buildctx.Export) error {
	width := 0
	for _, e := range exports {
		if w := lipgloss.Width(e.Name); w > width {
			width = w
		}
	}

	funcs := template.FuncMap{
		"name": func(s string) string {
			return r.styles.name.Render(s) + strings.Repeat(" ", width-lipgloss.Width(s))
		},
		"value": func(s string) string {
			if s == "" {
				return r.styles.empty.Render("(empty)")
			}
			return r.styles.value.Render(s)
		},
	}
	return r.execute("exports.tmpl", funcs, map[string]interface{}{"Exports": exports})
}

// RenderList writes a titled list of names. Machine readable formats get
// one name per line.
func (r *Renderer) RenderList(title string, items []string) error {
	if r.format != FormatText {
		for _, item := range items {
			if _, err := fmt.Fprintln(r.writer, item); err != nil {
				return err
			}
		}
		return nil
	}

	funcs := template.FuncMap{
		"heading": r.styles.heading.Render,
		"item":    r.styles.item.Render,
	}
	return r.execute("list.tmpl", funcs, map[string]interface{}{"Title": title, "Items": items})
}

func (r *Renderer) execute(name string, funcs template.FuncMap, data interface{}) error {
	log := logging.GetLogger("output")

	tmpl, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/"+name)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to parse template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to execute template %s", name)
	}
	log.Trace().Str("template", name).Int("bytes", buf.Len()).Msg("Template executed")

	_, err = r.writer.Write(buf.Bytes())
	return err
}
