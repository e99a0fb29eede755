package dialogue

import (
	"regexp"
	"strings"

	"github.com/wenlu-app/wenlu/internal/models"
)

// Two-stage line matching: the strict pattern expects the full
// "Speaker: text | pinyin | translation" shape; the loose pattern accepts a
// bare "Speaker: text" line. Lines matching neither are dropped.
var (
	strictLine = regexp.MustCompile(`^([AB])\s*[::]\s*(.+?)\s*\|\s*(.+?)\s*\|\s*(.+?)\s*$`)
	looseLine  = regexp.MustCompile(`^([AB])\s*[::]\s*([^|]+?)\s*$`)
)

// ParseOutcome is the result of parsing raw model output.
type ParseOutcome struct {
	Turns        []models.ConversationTurn
	DroppedLines int
}

// Parse splits raw model output into turns. Malformed lines are counted in
// DroppedLines rather than surfaced as errors; the caller applies the
// turn-count invariant on top of the outcome.
func Parse(raw string) ParseOutcome {
	var out ParseOutcome

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := strictLine.FindStringSubmatch(line); m != nil {
			out.Turns = append(out.Turns, models.ConversationTurn{
				Speaker:     m[1],
				Chinese:     m[2],
				Pinyin:      m[3],
				Translation: m[4],
			})
			continue
		}

		if m := looseLine.FindStringSubmatch(line); m != nil {
			out.Turns = append(out.Turns, models.ConversationTurn{
				Speaker: m[1],
				Chinese: m[2],
			})
			continue
		}

		out.DroppedLines++
	}
	return out
}
