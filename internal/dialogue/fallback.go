package dialogue

import "github.com/wenlu-app/wenlu/internal/models"

// FallbackTurns returns the canonical dialogue substituted when generation
// yields fewer than models.MinTurns parsable turns. Fixed content: callers
// and tests rely on it never changing within a generator version.
func FallbackTurns() []models.ConversationTurn {
	return []models.ConversationTurn{
		{
			Speaker:     "A",
			Chinese:     "我们今天练习这个词吧。",
			Pinyin:      "Wǒmen jīntiān liànxí zhège cí ba.",
			Translation: "Let's practice this word today.",
		},
		{
			Speaker:     "B",
			Chinese:     "好的，请给我一个例子。",
			Pinyin:      "Hǎo de, qǐng gěi wǒ yí gè lìzi.",
			Translation: "Sure, please give me an example.",
		},
		{
			Speaker:     "A",
			Chinese:     "没问题，我们开始吧。",
			Pinyin:      "Méi wèntí, wǒmen kāishǐ ba.",
			Translation: "No problem, let's begin.",
		},
	}
}
