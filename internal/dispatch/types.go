package dispatch

import (
	"context"
	"regexp"
)

// Message is one incoming chat message.
type Message struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	Sender  string `json:"sender"`
	Text    string `json:"text"`
}

// Match describes how a trigger pattern matched a message.
type Match struct {
	// Text is the whole matched substring.
	Text string
	// Groups holds the named capture groups that participated in the match.
	Groups map[string]string
}

// Payload is the data a handler hands to its template. A nil payload means
// the handler has nothing to say.
type Payload map[string]string

// Handler reacts to a matched message.
type Handler func(ctx context.Context, msg Message, match Match) Payload

// Trigger binds a pattern to a handler and the template its payload renders with.
type Trigger struct {
	Name     string
	Pattern  *regexp.Regexp
	Template string
	Handler  Handler
}

// RegisterFunc is handed to plugins on activation so they can install triggers.
type RegisterFunc func(Trigger) error

// Plugin is the contract between the host and a chat plugin.
type Plugin interface {
	Name() string
	// ConfigurationSchema lists the recognised keys and their defaults.
	ConfigurationSchema() map[string]string
	// ValidateConfiguration runs before Activate.
	ValidateConfiguration(cfg map[string]string) error
	Activate(cfg map[string]string, register RegisterFunc) error
	OnMessage(ctx context.Context, msg Message, match Match) Payload
}

// Reply is a rendered handler response.
type Reply struct {
	MessageID string `json:"message_id"`
	Trigger   string `json:"trigger"`
	Markdown  string `json:"markdown"`
	HTML      string `json:"html"`
}
