package plugin

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/kayako-bot/internal/dispatch"
	"github.com/spec-kit/kayako-bot/internal/domain"
	"github.com/spec-kit/kayako-bot/internal/kayako"
	"github.com/spec-kit/kayako-bot/internal/markdown"
	"github.com/spec-kit/kayako-bot/internal/observability"
)

// Configuration keys.
const (
	KeyAPIKey    = "API_KEY"
	KeySecretKey = "SECRET_KEY"
	KeyBaseURL   = "BASE_URL"
)

// TemplateTicketSummary names the reply template for ticket mentions.
const TemplateTicketSummary = "ticketsummary"

// TicketPattern finds ticket mentions: "kayako", optionally " ticket", an
// optional "#", then a composite id like ABC-123-45678 or a number.
var TicketPattern = regexp.MustCompile(`(?i)(^|\s)kayako( ticket)? #?(?P<ticketid>([A-Z0-9]{3}-[A-Z0-9]{3}-[A-Z0-9]{5})|[0-9]+)`)

// Seeder is implemented by random sources that need seeding on activation.
type Seeder interface {
	Seed() error
}

// Options tune the plugin's dependencies. Zero values pick production defaults.
type Options struct {
	Random      kayako.RandomSource
	HTTPClient  *http.Client
	HTTPTimeout time.Duration
	Metrics     *observability.Metrics
}

var _ dispatch.Plugin = (*Kayako)(nil)

// Kayako posts a short summary whenever a helpdesk ticket is mentioned.
type Kayako struct {
	logger  *zap.Logger
	opts    Options
	client  *kayako.Client
	baseURL string
}

// NewKayako creates the plugin. It does nothing until activated.
func NewKayako(logger *zap.Logger, opts Options) *Kayako {
	if opts.Random == nil {
		opts.Random = kayako.NewEntropySource()
	}
	return &Kayako{logger: logger.Named("kayako"), opts: opts}
}

// Name implements dispatch.Plugin.
func (k *Kayako) Name() string { return "kayako" }

// ConfigurationSchema implements dispatch.Plugin.
func (k *Kayako) ConfigurationSchema() map[string]string {
	return map[string]string{
		KeyAPIKey:    "",
		KeySecretKey: "",
		KeyBaseURL:   "https://",
	}
}

// ValidateConfiguration defers entirely to the host's default checks.
func (k *Kayako) ValidateConfiguration(cfg map[string]string) error {
	return dispatch.CheckConfiguration(k.Name(), k.ConfigurationSchema(), cfg)
}

// Activate seeds the random source, builds the API client and registers the
// ticket trigger.
func (k *Kayako) Activate(cfg map[string]string, register dispatch.RegisterFunc) error {
	if seeder, ok := k.opts.Random.(Seeder); ok {
		if err := seeder.Seed(); err != nil {
			return err
		}
	}

	k.baseURL = cfg[KeyBaseURL]
	k.client = kayako.NewClient(kayako.Credentials{
		APIKey:    cfg[KeyAPIKey],
		SecretKey: cfg[KeySecretKey],
		BaseURL:   k.baseURL,
	}, k.opts.Random, k.opts.HTTPTimeout)
	if k.opts.HTTPClient != nil {
		k.client.WithHTTPClient(k.opts.HTTPClient)
	}

	return register(dispatch.Trigger{
		Name:     "watch_for_ticket_mentions",
		Pattern:  TicketPattern,
		Template: TemplateTicketSummary,
		Handler:  k.OnMessage,
	})
}

// ExtractReference pulls the ticket mention out of text.
func ExtractReference(text string) (domain.TicketReference, bool) {
	m, ok := dispatch.FindMatch(TicketPattern, text)
	if !ok {
		return domain.TicketReference{}, false
	}
	return domain.TicketReference{DisplayID: m.Groups["ticketid"]}, true
}

// OnMessage looks up the mentioned ticket. Every failure is logged and
// answered with silence, since "kayako <number>" often is not a ticket at all.
func (k *Kayako) OnMessage(ctx context.Context, msg dispatch.Message, match dispatch.Match) dispatch.Payload {
	displayID := match.Groups["ticketid"]
	log := k.logger.With(zap.String("display_id", displayID), zap.String("message_id", msg.ID))
	log.Info("looking up ticket")

	summary, err := k.Lookup(ctx, domain.TicketReference{DisplayID: displayID})
	if err != nil {
		k.logFailure(log, err)
		return nil
	}
	return summary.Fields()
}

// Lookup fetches a ticket and builds its summary.
func (k *Kayako) Lookup(ctx context.Context, ref domain.TicketReference) (domain.TicketSummary, error) {
	if k.client == nil {
		return domain.TicketSummary{}, errors.New("kayako plugin is not activated")
	}

	start := time.Now()
	ticket, err := k.client.GetTicket(ctx, ref.DisplayID)
	k.opts.Metrics.RecordLookup(outcome(err), time.Since(start))
	if err != nil {
		return domain.TicketSummary{}, err
	}

	return domain.TicketSummary{
		TicketID:  ticket.ID,
		DisplayID: ref.DisplayID,
		Summary:   markdown.Escape(ticket.Subject),
		BaseURL:   k.baseURL,
	}, nil
}

func (k *Kayako) logFailure(log *zap.Logger, err error) {
	var httpErr *kayako.HTTPError
	switch {
	case kayako.IsNotFound(err):
		log.Info("ticket doesn't exist")
	case errors.As(err, &httpErr):
		log.Error("HTTP error while looking up ticket",
			zap.Int("status", httpErr.StatusCode),
			zap.String("endpoint", httpErr.Endpoint),
			zap.String("body", httpErr.Body),
			zap.Error(err),
			zap.Stack("stack"))
	default:
		log.Error("error while looking up ticket", zap.Error(err), zap.Stack("stack"))
	}
}

func outcome(err error) observability.LookupOutcome {
	var httpErr *kayako.HTTPError
	switch {
	case err == nil:
		return observability.OutcomeFound
	case kayako.IsNotFound(err):
		return observability.OutcomeNotFound
	case errors.As(err, &httpErr):
		return observability.OutcomeHTTPError
	default:
		return observability.OutcomeError
	}
}
