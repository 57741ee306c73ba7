package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func TestReplyOmitsEmptyFields(t *testing.T) {
	gen := &fakeGenerator{response: "hello"}
	r := NewResponder(gen)

	_, err := r.Reply(context.Background(), map[string]string{"name": "Alex", "occupation": ""}, "Hi")
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if !strings.Contains(gen.lastPrompt, "name: Alex") {
		t.Error("prompt is missing the name line")
	}
	if strings.Contains(gen.lastPrompt, "occupation") {
		t.Error("prompt should not mention fields with empty values")
	}
	if !strings.Contains(gen.lastPrompt, "USER MESSAGE: Hi") {
		t.Error("prompt is missing the user message")
	}
}

func TestReplyReturnsRawText(t *testing.T) {
	raw := "  *waves* hey there!\n"
	gen := &fakeGenerator{response: raw}

	got, err := NewResponder(gen).Reply(context.Background(), map[string]string{"name": "Alex"}, "Hi")
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if got != raw {
		t.Errorf("Reply() = %q, want the model text unmodified %q", got, raw)
	}
}

func TestReplyPropagatesError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}

	_, err := NewResponder(gen).Reply(context.Background(), map[string]string{"name": "Alex"}, "Hi")
	if err == nil {
		t.Fatal("Reply() error = nil, want the model error")
	}
}

func TestPersonaContext(t *testing.T) {
	tests := []struct {
		name    string
		persona map[string]string
		want    string
	}{
		{
			name:    "sorted key value lines",
			persona: map[string]string{"behavior": "calm", "archetype": "sage"},
			want:    "archetype: sage\nbehavior: calm",
		},
		{
			name:    "empty values skipped",
			persona: map[string]string{"name": "Alex", "status": ""},
			want:    "name: Alex",
		},
		{
			name:    "empty persona",
			persona: map[string]string{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := personaContext(tt.persona); got != tt.want {
				t.Errorf("personaContext() = %q, want %q", got, tt.want)
			}
		})
	}
}
