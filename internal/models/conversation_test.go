package models_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/wenlu-app/wenlu/internal/models"
)

func validConversation() models.Conversation {
	return models.Conversation{
		ID:     "w1-abc123def456",
		WordID: "w1",
		Word:   "你好",
		Turns: []models.ConversationTurn{
			{Speaker: "A", Chinese: "你好！", Pinyin: "Nǐ hǎo!", Translation: "Hello!"},
			{Speaker: "B", Chinese: "你好，很高兴认识你。"},
			{Speaker: "A", Chinese: "我也很高兴认识你。", AudioURL: "https://storage.test/a.mp3"},
		},
		GeneratorVersion: "v1",
		GeneratedAt:      time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestConversation_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	in := validConversation()

	data, err := json.Marshal(&in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out models.Conversation
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !out.GeneratedAt.Equal(in.GeneratedAt) {
		t.Errorf("GeneratedAt changed: %v -> %v", in.GeneratedAt, out.GeneratedAt)
	}
	out.GeneratedAt = in.GeneratedAt
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestConversation_WireFieldNames(t *testing.T) {
	t.Parallel()

	in := validConversation()
	data, err := json.Marshal(&in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal into map: %v", err)
	}
	for _, field := range []string{"id", "wordId", "word", "turns", "generatorVersion", "generatedAt"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("wire format missing field %q", field)
		}
	}

	var turns []map[string]json.RawMessage
	if err := json.Unmarshal(raw["turns"], &turns); err != nil {
		t.Fatalf("unmarshal turns: %v", err)
	}
	for _, field := range []string{"speaker", "chinese", "audioUrl"} {
		if _, ok := turns[0][field]; !ok {
			t.Errorf("turn wire format missing field %q", field)
		}
	}
}

func TestConversation_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*models.Conversation)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *models.Conversation) {}, wantErr: false},
		{name: "missing id", mutate: func(c *models.Conversation) { c.ID = "" }, wantErr: true},
		{name: "missing word id", mutate: func(c *models.Conversation) { c.WordID = "" }, wantErr: true},
		{
			name:    "too few turns",
			mutate:  func(c *models.Conversation) { c.Turns = c.Turns[:2] },
			wantErr: true,
		},
		{
			name: "too many turns",
			mutate: func(c *models.Conversation) {
				for len(c.Turns) <= models.MaxTurns {
					c.Turns = append(c.Turns, models.ConversationTurn{Speaker: "B", Chinese: "好"})
				}
			},
			wantErr: true,
		},
		{
			name:    "turn missing speaker",
			mutate:  func(c *models.Conversation) { c.Turns[1].Speaker = "" },
			wantErr: true,
		},
		{
			name:    "turn missing text",
			mutate:  func(c *models.Conversation) { c.Turns[1].Chinese = "" },
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			conv := validConversation()
			tc.mutate(&conv)

			err := conv.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("Validate returned nil, want error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("Validate returned %v, want nil", err)
			}
		})
	}
}
