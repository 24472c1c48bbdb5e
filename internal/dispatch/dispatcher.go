package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/kayako-bot/internal/markdown"
)

// Dispatcher matches incoming messages against registered triggers and runs
// their handlers synchronously, in registration order.
type Dispatcher struct {
	mu        sync.RWMutex
	triggers  []Trigger
	templates *Templates
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher instance.
func NewDispatcher(templates *Templates, logger *zap.Logger) *Dispatcher {
	if templates == nil {
		templates = NewTemplates()
	}
	return &Dispatcher{templates: templates, logger: logger}
}

// Register installs a trigger. It is the RegisterFunc handed to plugins.
func (d *Dispatcher) Register(t Trigger) error {
	if t.Pattern == nil || t.Handler == nil {
		return errors.New("trigger needs a pattern and a handler")
	}
	if t.Name == "" {
		t.Name = t.Pattern.String()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.triggers = append(d.triggers, t)
	d.logger.Debug("trigger registered", zap.String("trigger", t.Name), zap.String("template", t.Template))
	return nil
}

// Load validates cfg against the plugin's schema and activates it.
func (d *Dispatcher) Load(p Plugin, cfg map[string]string) error {
	if err := p.ValidateConfiguration(cfg); err != nil {
		return err
	}
	if err := p.Activate(cfg, d.Register); err != nil {
		return fmt.Errorf("activate plugin %s: %w", p.Name(), err)
	}
	d.logger.Info("plugin activated", zap.String("plugin", p.Name()))
	return nil
}

// Dispatch runs every trigger whose pattern matches msg.Text and returns the
// rendered replies. Handler failures are logged, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) []Reply {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	d.mu.RLock()
	triggers := append([]Trigger{}, d.triggers...)
	d.mu.RUnlock()

	var replies []Reply
	for _, t := range triggers {
		match, ok := FindMatch(t.Pattern, msg.Text)
		if !ok {
			continue
		}
		payload := d.invoke(ctx, t, msg, match)
		if payload == nil {
			continue
		}
		reply, err := d.render(msg.ID, t, payload)
		if err != nil {
			d.logger.Error("render reply", zap.String("message_id", msg.ID), zap.String("trigger", t.Name), zap.Error(err))
			continue
		}
		replies = append(replies, reply)
	}
	return replies
}

func (d *Dispatcher) invoke(ctx context.Context, t Trigger, msg Message, match Match) (payload Payload) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panic recovered",
				zap.String("message_id", msg.ID),
				zap.String("trigger", t.Name),
				zap.Any("panic", r),
				zap.Stack("stack"))
			payload = nil
		}
	}()
	return t.Handler(ctx, msg, match)
}

func (d *Dispatcher) render(messageID string, t Trigger, payload Payload) (Reply, error) {
	text, err := d.templates.Render(t.Template, payload)
	if err != nil {
		return Reply{}, err
	}
	html, err := markdown.ToHTML(text)
	if err != nil {
		return Reply{}, err
	}
	return Reply{MessageID: messageID, Trigger: t.Name, Markdown: text, HTML: html}, nil
}
