package email

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
)

//go:embed templates.toml
var defaultTemplates string

type rawTemplate struct {
	Subject string `toml:"subject"`
	Body    string `toml:"body"`
}

type compiled struct {
	subject *template.Template
	body    *template.Template
}

// Data is the view passed to every template.
type Data struct {
	CustomerName string
	BusinessName string
	ServiceName  string
	EmployeeName string
	Date         string
	Time         string
	Reference    string
}

type Templates struct {
	byName map[string]compiled
}

func ParseTemplates(src string) (*Templates, error) {
	var raw map[string]rawTemplate
	if _, err := toml.Decode(src, &raw); err != nil {
		return nil, fmt.Errorf("decode email templates: %w", err)
	}

	t := &Templates{byName: make(map[string]compiled, len(raw))}
	for name, r := range raw {
		subject, err := template.New(name + ".subject").Option("missingkey=error").Parse(r.Subject)
		if err != nil {
			return nil, fmt.Errorf("template %s subject: %w", name, err)
		}
		body, err := template.New(name + ".body").Option("missingkey=error").Parse(r.Body)
		if err != nil {
			return nil, fmt.Errorf("template %s body: %w", name, err)
		}
		t.byName[name] = compiled{subject: subject, body: body}
	}

	return t, nil
}

func DefaultTemplates() (*Templates, error) {
	return ParseTemplates(defaultTemplates)
}

func (t *Templates) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Render returns subject and body of the named template.
func (t *Templates) Render(name string, data Data) (string, string, error) {
	c, ok := t.byName[name]
	if !ok {
		return "", "", fmt.Errorf("email template %q not found", name)
	}

	var subject, body bytes.Buffer
	if err := c.subject.Execute(&subject, data); err != nil {
		return "", "", err
	}
	if err := c.body.Execute(&body, data); err != nil {
		return "", "", err
	}

	return strings.TrimSpace(subject.String()), strings.TrimSpace(body.String()), nil
}
