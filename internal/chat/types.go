// Package chat defines the request types shared by the HTTP layer and the
// example chain implementations.
package chat

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Default generation settings applied when a prompt omits them.
const (
	DefaultTemperature = 0.2
	DefaultTopP        = 0.7
	DefaultMaxTokens   = 1024
	DefaultSeed        = 42
	DefaultNumDocs     = 4
)

// Message is a single turn in a conversation. Role is normalized to lowercase
// when decoded; anything other than user, assistant or system is rejected.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

var validRoles = map[string]bool{
	"user":      true,
	"assistant": true,
	"system":    true,
}

// UnmarshalJSON decodes a message and validates its role.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw.Role = strings.ToLower(raw.Role)
	if !validRoles[raw.Role] {
		return fmt.Errorf("role must be one of 'user', 'assistant', or 'system', got %q", raw.Role)
	}
	*m = Message(raw)
	return nil
}

// Settings carries every prompt field except the message list and the
// knowledge-base flag. It is passed through to the chains untouched.
type Settings struct {
	Temperature float64  `json:"temperature"`
	TopP        float64  `json:"top_p"`
	MaxTokens   int      `json:"max_tokens"`
	Seed        int      `json:"seed"`
	Bad         []string `json:"bad,omitempty"`
	Stop        []string `json:"stop,omitempty"`
	Stream      bool     `json:"stream"`
}

// Prompt is the body of a /generate request: the conversation so far plus
// generation settings.
type Prompt struct {
	Messages         []Message `json:"messages"`
	UseKnowledgeBase bool      `json:"use_knowledge_base"`
	Temperature      float64   `json:"temperature"`
	TopP             float64   `json:"top_p"`
	MaxTokens        int       `json:"max_tokens"`
	Seed             int       `json:"seed"`
	Bad              []string  `json:"bad"`
	Stop             []string  `json:"stop"`
	Stream           bool      `json:"stream"`
}

// DefaultPrompt returns a prompt pre-filled with the default generation
// settings. Decode request bodies into this so omitted fields keep their
// defaults.
func DefaultPrompt() Prompt {
	return Prompt{
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		MaxTokens:   DefaultMaxTokens,
		Seed:        DefaultSeed,
	}
}

// Settings extracts the generation settings from the prompt, i.e. every field
// except Messages and UseKnowledgeBase.
func (p Prompt) Settings() Settings {
	return Settings{
		Temperature: p.Temperature,
		TopP:        p.TopP,
		MaxTokens:   p.MaxTokens,
		Seed:        p.Seed,
		Bad:         p.Bad,
		Stop:        p.Stop,
		Stream:      p.Stream,
	}
}

// SplitLastUserQuery returns the content of the most recent message with role
// "user" and the history with exactly that one message removed. If no user
// message exists, the query is empty and the history is returned unchanged.
func (p Prompt) SplitLastUserQuery() (string, []Message) {
	for i := len(p.Messages) - 1; i >= 0; i-- {
		if p.Messages[i].Role == "user" {
			query := p.Messages[i].Content
			history := make([]Message, 0, len(p.Messages)-1)
			history = append(history, p.Messages[:i]...)
			history = append(history, p.Messages[i+1:]...)
			return query, history
		}
	}
	return "", p.Messages
}

// DocumentSearchRequest is the body of a /documentSearch request.
type DocumentSearchRequest struct {
	Content string `json:"content"`
	NumDocs int    `json:"num_docs"`
}

// DefaultDocumentSearchRequest returns a search request pre-filled with the
// default result count.
func DefaultDocumentSearchRequest() DocumentSearchRequest {
	return DocumentSearchRequest{NumDocs: DefaultNumDocs}
}
