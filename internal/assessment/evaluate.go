package assessment

import (
	"strconv"
	"strings"
)

// noSelection never equals a valid option index.
const noSelection = -1

// Evaluate scores a single answer against its question. A nil answer is a
// blank and is simply wrong.
//
// Free-text answers must match an accepted answer exactly after trimming
// surrounding whitespace; there is no partial credit and no fuzzy matching.
func Evaluate(q Question, rawAnswer *string) Evaluation {
	if rawAnswer == nil {
		return Evaluation{}
	}

	var correct bool
	switch q.Type {
	case MultipleChoice:
		correct = selectedIndex(q.Options, *rawAnswer) == correctIndex(q)
	case FillIn, Code:
		correct = matchesAccepted(q.CorrectAnswer, *rawAnswer)
	}

	if !correct {
		return Evaluation{}
	}
	return Evaluation{IsCorrect: true, PointsAwarded: q.EffectivePoints()}
}

// selectedIndex is the position of the chosen option. Duplicate option text
// resolves to the first occurrence.
func selectedIndex(options []string, answer string) int {
	for i, opt := range options {
		if opt == answer {
			return i
		}
	}
	return noSelection
}

// correctIndex parses the answer key of a multiple-choice question. A missing
// or unparsable key yields a value no selection can match.
func correctIndex(q Question) int {
	if len(q.CorrectAnswer) == 0 {
		return noSelection - 1
	}
	idx, err := strconv.Atoi(strings.TrimSpace(q.CorrectAnswer[0]))
	if err != nil || idx < 0 {
		return noSelection - 1
	}
	return idx
}

func matchesAccepted(accepted []string, answer string) bool {
	answer = strings.TrimSpace(answer)
	for _, a := range accepted {
		if strings.TrimSpace(a) == answer {
			return true
		}
	}
	return false
}
