package dto

import "github.com/spec-kit/kayako-bot/internal/dispatch"

// IncomingMessageRequest is what a chat host posts for every message it sees.
type IncomingMessageRequest struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
	Sender  string `json:"sender"`
	Text    string `json:"text"`
}

// DispatchResponse lists the replies the host should post.
type DispatchResponse struct {
	MessageID string           `json:"message_id"`
	Replies   []dispatch.Reply `json:"replies"`
}
