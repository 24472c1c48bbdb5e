package dispatch

import (
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// TicketSummaryTemplate is the host's default layout for ticket summaries.
const TicketSummaryTemplate = `[{{.displayid}}]({{.base_url}}/staff/index.php?/Tickets/Ticket/View/{{.ticketid}}): {{.summary}}`

// Templates is a named set of reply templates.
type Templates struct {
	mu  sync.RWMutex
	set map[string]*template.Template
}

// NewTemplates returns a set preloaded with the built-in templates.
func NewTemplates() *Templates {
	t := &Templates{set: make(map[string]*template.Template)}
	_ = t.Add("ticketsummary", TicketSummaryTemplate)
	return t
}

// Add parses and stores a template, replacing any previous one with that name.
func (t *Templates) Add(name, text string) error {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.set[name] = tmpl
	return nil
}

// Render executes the named template with payload.
func (t *Templates) Render(name string, payload Payload) (string, error) {
	t.mu.RLock()
	tmpl, ok := t.set[name]
	t.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, map[string]string(payload)); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return b.String(), nil
}
