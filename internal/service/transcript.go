package service

import (
	"fmt"
	"strings"

	"github.com/NoahOriano/see-your-future/internal/model"
)

// NoAnswerPlaceholder is rendered for empty or whitespace-only answers so
// the model can tell a skipped question from a blank one.
const NoAnswerPlaceholder = "(no answer)"

// BuildTranscript flattens rounds into the text block every generation
// prompt consumes. Pure function: the same rounds always produce the same
// transcript, which keeps generation reproducible across the pipeline.
//
// Format per round:
//
//	Round N (source - label)
//	  Q1: prompt
//	  A1: answer
//
// Rounds are separated by a blank line.
func BuildTranscript(rounds []model.QuestionRound) string {
	blocks := make([]string, 0, len(rounds))

	for _, round := range rounds {
		var sb strings.Builder
		fmt.Fprintf(&sb, "Round %d (%s - %s)", round.RoundNumber, round.Source, round.Label)

		for i, q := range round.Questions {
			answer := strings.TrimSpace(q.Answer)
			if answer == "" {
				answer = NoAnswerPlaceholder
			}
			fmt.Fprintf(&sb, "\n  Q%d: %s\n  A%d: %s", i+1, q.Prompt, i+1, answer)
		}

		blocks = append(blocks, sb.String())
	}

	return strings.Join(blocks, "\n\n")
}
