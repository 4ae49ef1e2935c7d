package server

import "strings"

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Message string `json:"message"`
}

func (t ChatTurn) text() string {
	if t.Content != "" {
		return t.Content
	}
	return t.Message
}

// ChatRequest is the body of POST /chat. Clients send either a single message
// (content is accepted as an alias) or the whole conversation as turns.
type ChatRequest struct {
	Message  string     `json:"message"`
	Content  string     `json:"content"`
	Messages []ChatTurn `json:"messages"`
}

// Text returns the utterance to answer: the single message if present,
// otherwise the most recent user turn. Turns without a role count as user
// turns.
func (r ChatRequest) Text() string {
	if strings.TrimSpace(r.Message) != "" {
		return r.Message
	}
	if strings.TrimSpace(r.Content) != "" {
		return r.Content
	}
	for i := len(r.Messages) - 1; i >= 0; i-- {
		role := strings.ToLower(strings.TrimSpace(r.Messages[i].Role))
		if role == "user" || role == "" {
			return r.Messages[i].text()
		}
	}
	return ""
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}
