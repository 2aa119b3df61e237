package display

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides utility functions for outcome templates.
var templateFuncs = sprig.TxtFuncMap()

// Outcome line templates, one per action shape. Data fields are supplied by
// the executors.
var outcomeTemplates = map[string]string{
	"move":             `{{ .Actor }} moves {{ with .Door }}{{ . }} {{ end }}into {{ .Room }}.`,
	"move_careful":     `{{ .Actor }} advances carefully {{ with .Door }}{{ . }} {{ end }}into {{ .Room }}, checking corners.`,
	"move_quick":       `{{ .Actor }} sprints {{ with .Door }}{{ . }} {{ end }}into {{ .Room }}.`,
	"examine":          `{{ .Actor }} looks {{ .Target }} over.`,
	"examine_thorough": `{{ .Actor }} gives {{ .Target }} a thorough once-over.`,
	"search":           `{{ .Actor }} searches {{ .Room }}.`,
	"quick_radio":      `{{ .Actor }} keys the radio: "{{ .Message }}"`,
	"listen":           `{{ .Actor }} holds still and listens.`,
	"wait":             `{{ .Actor }} holds position.`,
}

// Narrate renders the named outcome template with data and word-wraps the
// result.
func Narrate(name string, data any) (string, error) {
	tmplStr, ok := outcomeTemplates[name]
	if !ok {
		return "", fmt.Errorf("no outcome template %q", name)
	}

	tmpl, err := template.New(name).Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", name, err)
	}

	return Wrap(buf.String()), nil
}
