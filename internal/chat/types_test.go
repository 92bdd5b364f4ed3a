package chat

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestMessageUnmarshalRoleNormalization(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantRole string
		wantErr  bool
	}{
		{
			name:     "lowercase user",
			body:     `{"role": "user", "content": "hi"}`,
			wantRole: "user",
		},
		{
			name:     "uppercase USER normalized",
			body:     `{"role": "USER", "content": "hi"}`,
			wantRole: "user",
		},
		{
			name:     "mixed case Assistant normalized",
			body:     `{"role": "Assistant", "content": "hello"}`,
			wantRole: "assistant",
		},
		{
			name:     "system role accepted",
			body:     `{"role": "system", "content": "be brief"}`,
			wantRole: "system",
		},
		{
			name:    "invalid role bot rejected",
			body:    `{"role": "bot", "content": "hi"}`,
			wantErr: true,
		},
		{
			name:    "empty role rejected",
			body:    `{"content": "hi"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msg Message
			err := json.Unmarshal([]byte(tt.body), &msg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && msg.Role != tt.wantRole {
				t.Errorf("Role = %q, want %q", msg.Role, tt.wantRole)
			}
		})
	}
}

func TestPromptDefaults(t *testing.T) {
	p := DefaultPrompt()
	if err := json.Unmarshal([]byte(`{"messages": [], "use_knowledge_base": false}`), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := Settings{
		Temperature: 0.2,
		TopP:        0.7,
		MaxTokens:   1024,
		Seed:        42,
		Stream:      false,
	}
	if got := p.Settings(); !reflect.DeepEqual(got, want) {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
}

func TestPromptDefaultsOverridden(t *testing.T) {
	p := DefaultPrompt()
	body := `{
		"messages": [{"role": "user", "content": "q"}],
		"use_knowledge_base": true,
		"temperature": 0.9,
		"max_tokens": 256,
		"stop": ["###"],
		"stream": true
	}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	got := p.Settings()
	if got.Temperature != 0.9 {
		t.Errorf("Temperature = %v, want 0.9", got.Temperature)
	}
	if got.TopP != 0.7 {
		t.Errorf("TopP = %v, want default 0.7", got.TopP)
	}
	if got.MaxTokens != 256 {
		t.Errorf("MaxTokens = %v, want 256", got.MaxTokens)
	}
	if got.Seed != 42 {
		t.Errorf("Seed = %v, want default 42", got.Seed)
	}
	if !reflect.DeepEqual(got.Stop, []string{"###"}) {
		t.Errorf("Stop = %v, want [###]", got.Stop)
	}
	if !got.Stream {
		t.Error("Stream = false, want true")
	}
}

func TestSplitLastUserQuery(t *testing.T) {
	tests := []struct {
		name        string
		messages    []Message
		wantQuery   string
		wantHistory []Message
	}{
		{
			name: "last message is user",
			messages: []Message{
				{Role: "system", Content: "sys"},
				{Role: "user", Content: "first"},
				{Role: "assistant", Content: "reply"},
				{Role: "user", Content: "second"},
			},
			wantQuery: "second",
			wantHistory: []Message{
				{Role: "system", Content: "sys"},
				{Role: "user", Content: "first"},
				{Role: "assistant", Content: "reply"},
			},
		},
		{
			name: "user message not last",
			messages: []Message{
				{Role: "user", Content: "question"},
				{Role: "assistant", Content: "answer"},
			},
			wantQuery: "question",
			wantHistory: []Message{
				{Role: "assistant", Content: "answer"},
			},
		},
		{
			name: "only most recent user message removed",
			messages: []Message{
				{Role: "user", Content: "one"},
				{Role: "user", Content: "two"},
			},
			wantQuery: "two",
			wantHistory: []Message{
				{Role: "user", Content: "one"},
			},
		},
		{
			name: "no user message leaves history unchanged",
			messages: []Message{
				{Role: "system", Content: "sys"},
				{Role: "assistant", Content: "reply"},
			},
			wantQuery: "",
			wantHistory: []Message{
				{Role: "system", Content: "sys"},
				{Role: "assistant", Content: "reply"},
			},
		},
		{
			name:        "empty conversation",
			messages:    nil,
			wantQuery:   "",
			wantHistory: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Prompt{Messages: tt.messages}
			query, history := p.SplitLastUserQuery()
			if query != tt.wantQuery {
				t.Errorf("query = %q, want %q", query, tt.wantQuery)
			}
			if len(history) != len(tt.wantHistory) {
				t.Fatalf("history length = %d, want %d", len(history), len(tt.wantHistory))
			}
			for i := range history {
				if history[i] != tt.wantHistory[i] {
					t.Errorf("history[%d] = %+v, want %+v", i, history[i], tt.wantHistory[i])
				}
			}
		})
	}
}

func TestDefaultDocumentSearchRequest(t *testing.T) {
	req := DefaultDocumentSearchRequest()
	if err := json.Unmarshal([]byte(`{"content": "find me"}`), &req); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if req.NumDocs != 4 {
		t.Errorf("NumDocs = %d, want default 4", req.NumDocs)
	}
	if req.Content != "find me" {
		t.Errorf("Content = %q, want %q", req.Content, "find me")
	}
}
