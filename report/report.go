// Package report renders parameter listings with text/template.
package report

import (
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/kontrolhq/kontrol"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTemplate prints one aligned line per parameter.
const DefaultTemplate = `{{- range . -}}
{{ .ID | printf "%-16s" }} {{ .Name | printf "%-20s" }} {{ .Kind | printf "%-6s" }} {{ .Display | printf "%-14s" }}
{{- if .Bounded }} [{{ .Min }}..{{ .Max }}]{{ end }}
{{ end -}}`

type (
	Report struct {
		tmpl *template.Template
	}

	// Row is the data the template sees for one parameter.
	Row struct {
		ID      string
		Name    string
		Kind    string
		Value   string
		Unit    string
		Display string
		Min     float32
		Max     float32
		Default float32
		Bounded bool
	}
)

// New parses text as a template executed with a []Row. Besides the sprig
// functions, the template can use kindTitle to turn a type tag into a heading.
func New(text string) (*Report, error) {
	title := cases.Title(language.English)
	funcs := sprig.TxtFuncMap()
	funcs["kindTitle"] = func(s string) string { return title.String(s) }
	tmpl, err := template.New("report").Funcs(funcs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("report: could not parse template: %w", err)
	}
	return &Report{tmpl: tmpl}, nil
}

// Default returns the report of DefaultTemplate.
func Default() *Report {
	r, err := New(DefaultTemplate)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Report) Write(w io.Writer, params []*kontrol.Parameter) error {
	rows := make([]Row, 0, len(params))
	for _, p := range params {
		rows = append(rows, NewRow(p))
	}
	if err := r.tmpl.Execute(w, rows); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

func NewRow(p *kontrol.Parameter) Row {
	return Row{
		ID:      p.ID(),
		Name:    p.DisplayName(),
		Kind:    p.Kind().String(),
		Value:   p.DisplayValue(),
		Unit:    p.DisplayUnit(),
		Display: p.Display(),
		Min:     p.Min(),
		Max:     p.Max(),
		Default: p.Default(),
		Bounded: p.Kind().Bounded(),
	}
}
