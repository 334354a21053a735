package assessment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformedItem marks authoring defects. Grading still completes.
	ErrMalformedItem = errors.New("malformed item")
	// ErrUnknownQuestion marks an answer for a question the item does not have.
	ErrUnknownQuestion = errors.New("unknown question reference")
)

// Diagnose lists the authoring defects of an item. Every returned error wraps
// ErrMalformedItem.
func Diagnose(item GradableItem) []error {
	var problems []error
	if len(item.Questions) == 0 {
		problems = append(problems, fmt.Errorf("%w: item %s has no questions", ErrMalformedItem, item.ID))
	}
	for i, q := range item.Questions {
		ref := questionRef(q, i)
		if len(q.CorrectAnswer) == 0 {
			problems = append(problems, fmt.Errorf("%w: %s has no correct answer", ErrMalformedItem, ref))
			continue
		}
		if q.Type != MultipleChoice {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSpace(q.CorrectAnswer[0]))
		if err != nil {
			problems = append(problems, fmt.Errorf("%w: %s answer key %q is not an option index", ErrMalformedItem, ref, q.CorrectAnswer[0]))
			continue
		}
		if idx < 0 || idx >= len(q.Options) {
			problems = append(problems, fmt.Errorf("%w: %s answer key %d is outside %d options", ErrMalformedItem, ref, idx, len(q.Options)))
		}
	}
	return problems
}

func questionRef(q Question, position int) string {
	if q.ID == "" {
		return fmt.Sprintf("question #%d", position+1)
	}
	return "question " + q.ID
}
