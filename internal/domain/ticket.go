package domain

// TicketReference is a ticket mention found in a chat message.
type TicketReference struct {
	// DisplayID is exactly the text matched in the message. It is used
	// verbatim in the API path and in the reply.
	DisplayID string
}

// TicketSummary is the payload rendered by the "ticketsummary" template.
type TicketSummary struct {
	TicketID  string
	DisplayID string
	// Summary is the ticket subject, Markdown-escaped.
	Summary string
	BaseURL string
}

// Fields returns the template variables for the summary.
func (s TicketSummary) Fields() map[string]string {
	return map[string]string{
		"ticketid":  s.TicketID,
		"displayid": s.DisplayID,
		"summary":   s.Summary,
		"base_url":  s.BaseURL,
	}
}
