// Package composer renders embedded mail templates into subject/body pairs.
package composer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/postroom/postroom/internal/domain/model"
)

//go:embed templates
var templateFS embed.FS

// DefaultTemplate is used when a send request names no template.
const DefaultTemplate = "default"

// Composer renders named template pairs. Each template <name> is a directory
// under templates/ holding subject.txt and body.html; all pairs are parsed at
// construction so a bad template fails startup, not a job.
type Composer struct {
	pairs map[string]templatePair
}

type templatePair struct {
	subject *template.Template
	body    *template.Template
}

// New parses all embedded templates.
func New() (*Composer, error) {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read mail templates: %w", err)
	}

	pairs := make(map[string]templatePair, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		subject, err := template.ParseFS(templateFS, "templates/"+name+"/subject.txt")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		body, err := template.ParseFS(templateFS, "templates/"+name+"/body.html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pairs[name] = templatePair{subject: subject, body: body}
	}

	if _, ok := pairs[DefaultTemplate]; !ok {
		return nil, fmt.Errorf("default mail template is missing")
	}

	return &Composer{pairs: pairs}, nil
}

// Names returns the available template names.
func (c *Composer) Names() []string {
	names := make([]string, 0, len(c.pairs))
	for name := range c.pairs {
		names = append(names, name)
	}
	return names
}

// Compose renders the named template pair with the given substitutions. An
// empty name falls back to the default template.
func (c *Composer) Compose(name string, data map[string]string) (model.Message, error) {
	if name == "" {
		name = DefaultTemplate
	}
	pair, ok := c.pairs[name]
	if !ok {
		return model.Message{}, fmt.Errorf("no such template %q", name)
	}

	subject, err := render(pair.subject, name, data)
	if err != nil {
		return model.Message{}, err
	}
	body, err := render(pair.body, name, data)
	if err != nil {
		return model.Message{}, err
	}

	return model.Message{Subject: strings.TrimSpace(subject), Body: body}, nil
}

func render(t *template.Template, name string, data map[string]string) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return b.String(), nil
}
