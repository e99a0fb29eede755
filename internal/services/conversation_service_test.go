package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wenlu-app/wenlu/internal/cachekey"
	"github.com/wenlu-app/wenlu/internal/dialogue"
	"github.com/wenlu-app/wenlu/internal/models"
	"github.com/wenlu-app/wenlu/internal/providers/textgen"
	textgenmock "github.com/wenlu-app/wenlu/internal/providers/textgen/mock"
	"github.com/wenlu-app/wenlu/internal/services"
	storagemock "github.com/wenlu-app/wenlu/internal/storage/mock"
	"github.com/wenlu-app/wenlu/internal/utils"
)

// scenarioResponse is a well-formed three-line generator reply for 你好.
const scenarioResponse = "A: 你好！ | Nǐ hǎo! | Hello!\n" +
	"B: 你好，很高兴认识你。 | Nǐ hǎo, hěn gāoxìng rènshi nǐ. | Hello, nice to meet you.\n" +
	"A: 我也很高兴认识你。 | Wǒ yě hěn gāoxìng rènshi nǐ. | Nice to meet you too."

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newConversationService(st *storagemock.Store, gen *textgenmock.Provider) services.ConversationService {
	return services.NewConversationService(st, gen, textgen.Options{}, testLogger())
}

// seedConversation stores a valid conversation record for wordID and
// returns it.
func seedConversation(t *testing.T, st *storagemock.Store, wordID, word string) *models.Conversation {
	t.Helper()

	conv := &models.Conversation{
		ID:     cachekey.ConversationID(wordID),
		WordID: wordID,
		Word:   word,
		Turns: []models.ConversationTurn{
			{Speaker: "A", Chinese: "你好！", Pinyin: "Nǐ hǎo!", Translation: "Hello!"},
			{Speaker: "B", Chinese: "你好，很高兴认识你。"},
			{Speaker: "A", Chinese: "我也很高兴认识你。"},
		},
		GeneratorVersion: dialogue.GeneratorVersion,
		GeneratedAt:      time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
	}
	data, err := json.Marshal(conv)
	if err != nil {
		t.Fatalf("seed marshal: %v", err)
	}
	st.Objects[cachekey.TextObjectPath(wordID)] = data
	return conv
}

func TestGenerateText_CacheHitShortCircuits(t *testing.T) {
	t.Parallel()

	st := storagemock.New()
	gen := &textgenmock.Provider{Response: scenarioResponse}
	seeded := seedConversation(t, st, "w1", "你好")

	svc := newConversationService(st, gen)
	conv, err := svc.GenerateText(context.Background(), "w1", "你好", "")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}

	if len(gen.GenerateCalls) != 0 {
		t.Fatalf("generator invoked %d times on cache hit, want 0", len(gen.GenerateCalls))
	}
	if conv.ID != seeded.ID {
		t.Errorf("ID = %q, want %q", conv.ID, seeded.ID)
	}
	if !conv.GeneratedAt.Equal(seeded.GeneratedAt) {
		t.Errorf("GeneratedAt re-stamped on hit: %v", conv.GeneratedAt)
	}
	if len(st.UploadCalls) != 0 {
		t.Errorf("cache hit performed %d uploads, want 0", len(st.UploadCalls))
	}
}

func TestGenerateText_MissGeneratesAndPersists(t *testing.T) {
	t.Parallel()

	st := storagemock.New()
	gen := &textgenmock.Provider{Response: scenarioResponse}

	svc := newConversationService(st, gen)
	conv, err := svc.GenerateText(context.Background(), "w1", "你好", "")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}

	if len(gen.GenerateCalls) != 1 {
		t.Fatalf("generator invoked %d times, want 1", len(gen.GenerateCalls))
	}
	if !strings.Contains(gen.GenerateCalls[0].Prompt, "你好") {
		t.Errorf("prompt does not mention the word: %q", gen.GenerateCalls[0].Prompt)
	}

	if conv.ID != cachekey.ConversationID("w1") {
		t.Errorf("ID = %q", conv.ID)
	}
	if len(conv.Turns) != 3 {
		t.Fatalf("turns = %d, want 3", len(conv.Turns))
	}
	if conv.Turns[0].Speaker != "A" || conv.Turns[0].Chinese != "你好！" {
		t.Errorf("turns[0] = %+v", conv.Turns[0])
	}
	for i, turn := range conv.Turns {
		if turn.AudioURL != "" {
			t.Errorf("turns[%d].AudioURL = %q, want empty", i, turn.AudioURL)
		}
	}
	if conv.GeneratorVersion != dialogue.GeneratorVersion {
		t.Errorf("GeneratorVersion = %q", conv.GeneratorVersion)
	}

	path := cachekey.TextObjectPath("w1")
	if _, ok := st.Objects[path]; !ok {
		t.Fatalf("conversation not persisted at %q", path)
	}
	if ct := st.ContentTypes[path]; ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}

	var persisted models.Conversation
	if err := json.Unmarshal(st.Objects[path], &persisted); err != nil {
		t.Fatalf("persisted record not valid JSON: %v", err)
	}
	if persisted.ID != conv.ID || len(persisted.Turns) != len(conv.Turns) {
		t.Errorf("persisted record differs from response")
	}
}

func TestGenerateText_FallbackOnUnusableOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "commentary only", raw: "I cannot write a dialogue right now."},
		{name: "two turns", raw: "A: 你好 | ni hao | hi\nB: 你好 | ni hao | hi"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			st := storagemock.New()
			gen := &textgenmock.Provider{Response: tc.raw}

			svc := newConversationService(st, gen)
			conv, err := svc.GenerateText(context.Background(), "w1", "你好", "")
			if err != nil {
				t.Fatalf("GenerateText: %v", err)
			}

			if !reflect.DeepEqual(conv.Turns, dialogue.FallbackTurns()) {
				t.Errorf("turns != canonical fallback: %+v", conv.Turns)
			}
		})
	}
}

func TestGenerateText_TruncatesToMaxTurns(t *testing.T) {
	t.Parallel()

	lines := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		speaker := "A"
		if i%2 == 1 {
			speaker = "B"
		}
		lines = append(lines, speaker+": 第几句话 | dì jǐ jù huà | line")
	}

	st := storagemock.New()
	gen := &textgenmock.Provider{Response: strings.Join(lines, "\n")}

	svc := newConversationService(st, gen)
	conv, err := svc.GenerateText(context.Background(), "w1", "你好", "")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if len(conv.Turns) != models.MaxTurns {
		t.Fatalf("turns = %d, want %d", len(conv.Turns), models.MaxTurns)
	}
}

func TestGenerateText_PersistFailureStillReturns(t *testing.T) {
	t.Parallel()

	st := storagemock.New()
	st.UploadErrFor[cachekey.TextObjectPath("w1")] = errors.New("gcs write failed")
	gen := &textgenmock.Provider{Response: scenarioResponse}

	svc := newConversationService(st, gen)
	conv, err := svc.GenerateText(context.Background(), "w1", "你好", "")
	if err != nil {
		t.Fatalf("GenerateText returned error on persist failure: %v", err)
	}
	if len(conv.Turns) != 3 {
		t.Fatalf("turns = %d, want 3", len(conv.Turns))
	}
}

func TestGenerateText_InfrastructureErrorSurfaces(t *testing.T) {
	t.Parallel()

	st := storagemock.New()
	st.ExistsErr = errors.New("connection refused")
	gen := &textgenmock.Provider{Response: scenarioResponse}

	svc := newConversationService(st, gen)
	_, err := svc.GenerateText(context.Background(), "w1", "你好", "")
	if !utils.IsCode(err, utils.CodeUnavailable) {
		t.Fatalf("err = %v, want UNAVAILABLE", err)
	}
	if len(gen.GenerateCalls) != 0 {
		t.Fatalf("generator invoked despite storage outage")
	}
}

func TestGenerateText_ProviderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode utils.Code
	}{
		{name: "provider failure", err: errors.New("quota exceeded"), wantCode: utils.CodeUpstream},
		{name: "timeout", err: context.DeadlineExceeded, wantCode: utils.CodeTimeout},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			st := storagemock.New()
			gen := &textgenmock.Provider{Err: tc.err}

			svc := newConversationService(st, gen)
			_, err := svc.GenerateText(context.Background(), "w1", "你好", "")
			if !utils.IsCode(err, tc.wantCode) {
				t.Fatalf("err = %v, want code %s", err, tc.wantCode)
			}
			// No partial cache writes on a failed generation.
			if len(st.UploadCalls) != 0 {
				t.Errorf("failed generation performed %d uploads", len(st.UploadCalls))
			}
		})
	}
}

func TestGenerateText_CorruptCacheEntryRegenerates(t *testing.T) {
	t.Parallel()

	st := storagemock.New()
	st.Objects[cachekey.TextObjectPath("w1")] = []byte("{not json")
	gen := &textgenmock.Provider{Response: scenarioResponse}

	svc := newConversationService(st, gen)
	conv, err := svc.GenerateText(context.Background(), "w1", "你好", "")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if len(gen.GenerateCalls) != 1 {
		t.Fatalf("generator invoked %d times, want 1 (corrupt entry treated as miss)", len(gen.GenerateCalls))
	}
	if len(conv.Turns) != 3 {
		t.Fatalf("turns = %d, want 3", len(conv.Turns))
	}
}

func TestGetCached(t *testing.T) {
	t.Parallel()

	st := storagemock.New()
	gen := &textgenmock.Provider{}
	seeded := seedConversation(t, st, "w1", "你好")

	svc := newConversationService(st, gen)

	conv, err := svc.GetCached(context.Background(), "w1")
	if err != nil {
		t.Fatalf("GetCached: %v", err)
	}
	if conv.ID != seeded.ID {
		t.Errorf("ID = %q, want %q", conv.ID, seeded.ID)
	}

	_, err = svc.GetCached(context.Background(), "missing")
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
	if len(gen.GenerateCalls) != 0 {
		t.Fatalf("GetCached must never generate")
	}
}
