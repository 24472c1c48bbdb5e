package kayako

import (
	"context"
	"fmt"

	"github.com/clbanning/mxj/v2"
)

// Ticket holds the fields the bot reads from a ticket lookup.
type Ticket struct {
	// ID is the internal numeric id, distinct from the display id.
	ID      string
	Subject string
}

// TicketEndpoint returns the REST endpoint for a ticket. The id is substituted
// literally.
func TicketEndpoint(displayID string) string {
	return "/Tickets/Ticket/" + displayID
}

// GetTicket fetches a ticket by display id or numeric id.
func (c *Client) GetTicket(ctx context.Context, displayID string) (Ticket, error) {
	tree, err := c.Call(ctx, TicketEndpoint(displayID), nil)
	if err != nil {
		return Ticket{}, err
	}
	return DecodeTicket(tree)
}

// DecodeTicket reads tickets.ticket from a decoded response. When the
// response lists several tickets the first is used.
func DecodeTicket(tree mxj.Map) (Ticket, error) {
	tickets, ok := tree["tickets"].(map[string]interface{})
	if !ok {
		return Ticket{}, fmt.Errorf("%w: missing tickets element", ErrUnexpectedResponse)
	}

	var ticket map[string]interface{}
	switch v := tickets["ticket"].(type) {
	case map[string]interface{}:
		ticket = v
	case []interface{}:
		if len(v) > 0 {
			ticket, _ = v[0].(map[string]interface{})
		}
	}
	if ticket == nil {
		return Ticket{}, fmt.Errorf("%w: missing ticket element", ErrUnexpectedResponse)
	}

	id, ok := textOf(ticket["@id"])
	if !ok {
		return Ticket{}, fmt.Errorf("%w: ticket has no id attribute", ErrUnexpectedResponse)
	}
	subject, ok := textOf(ticket["subject"])
	if !ok {
		return Ticket{}, fmt.Errorf("%w: ticket has no subject", ErrUnexpectedResponse)
	}
	return Ticket{ID: id, Subject: subject}, nil
}

// textOf returns the character data of a decoded node: plain strings as-is,
// elements with attributes through their #text entry.
func textOf(node interface{}) (string, bool) {
	switch v := node.(type) {
	case string:
		return v, true
	case map[string]interface{}:
		if text, ok := v["#text"].(string); ok {
			return text, true
		}
		return "", len(v) > 0 && onlyAttributes(v)
	}
	return "", false
}

func onlyAttributes(m map[string]interface{}) bool {
	for k := range m {
		if len(k) == 0 || k[0] != '@' {
			return false
		}
	}
	return true
}
