package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// RenderSummary renders the Summary struct to a markdown string.
func RenderSummary(s *Summary) string {
	partials := map[string]string{
		"summary_title":    "summary_title.md",
		"summary_records":  "summary_records.md",
		"summary_accounts": "summary_accounts.md",
		"summary_errors":   "summary_errors.md",
	}
	return renderTemplate("summary", "summary.md", partials, s)
}

// RenderAccounts renders only the account table of the Summary.
func RenderAccounts(s *Summary) string {
	return renderTemplate("accounts", "summary_accounts.md", nil, s)
}

// renderTemplate renders a main template that depends on several partials.
//
// Rendering errors are returned as the rendered text, templates are embedded
// and tested so they should never happen.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
