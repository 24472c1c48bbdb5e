package dispatch

import (
	"regexp"
	"testing"
)

func TestTicketSummaryTemplate(t *testing.T) {
	out, err := NewTemplates().Render("ticketsummary", Payload{
		"ticketid":  "55",
		"displayid": "9182",
		"summary":   `Cannot log in`,
		"base_url":  "https://support.example.com",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "[9182](https://support.example.com/staff/index.php?/Tickets/Ticket/View/55): Cannot log in"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestAddRejectsBadTemplate(t *testing.T) {
	if err := NewTemplates().Add("bad", "{{.x"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFindMatchGroups(t *testing.T) {
	re := regexp.MustCompile(`(?P<a>x)|(?P<b>y)`)
	m, ok := FindMatch(re, "zzy")
	if !ok {
		t.Fatal("expected match")
	}
	if m.Text != "y" || m.Groups["b"] != "y" {
		t.Errorf("unexpected match %+v", m)
	}
	if _, present := m.Groups["a"]; present {
		t.Error("non-participating group must be absent")
	}
}
