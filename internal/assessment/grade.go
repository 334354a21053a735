package assessment

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Scorer turns a final submission into a Result. Its only side effect is
// logging authoring defects and stray answers.
type Scorer struct {
	log *zap.Logger
}

func NewScorer(log *zap.Logger) *Scorer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scorer{log: log}
}

// Grade scores every question of the item. The caller must already have
// made sure no Result exists for (learner, item); storage enforces it too.
func (s *Scorer) Grade(sub Submission, item GradableItem) Result {
	for _, problem := range Diagnose(item) {
		s.log.Warn("grading malformed item",
			zap.String("item_id", item.ID),
			zap.String("learner_id", sub.LearnerID),
			zap.Error(problem))
	}

	byID := make(map[string]Answer, len(sub.Answers))
	for _, a := range sub.Answers {
		if a.QuestionID == "" {
			continue
		}
		if _, dup := byID[a.QuestionID]; !dup {
			byID[a.QuestionID] = a
		}
	}
	known := make(map[string]bool, len(item.Questions))
	for _, q := range item.Questions {
		if q.ID != "" {
			known[q.ID] = true
		}
	}
	for id := range byID {
		if !known[id] {
			s.log.Debug("ignoring answer",
				zap.String("item_id", item.ID),
				zap.String("question_id", id),
				zap.Error(ErrUnknownQuestion))
		}
	}

	outcomes := make([]Outcome, 0, len(item.Questions))
	var total, maxPoints int
	for i, q := range item.Questions {
		raw := answerFor(q, i, byID, sub.Answers)
		ev := Evaluate(q, raw)
		outcomes = append(outcomes, Outcome{
			QuestionID:    q.ID,
			RawAnswer:     raw,
			IsCorrect:     ev.IsCorrect,
			PointsAwarded: ev.PointsAwarded,
		})
		total += ev.PointsAwarded
		maxPoints += q.EffectivePoints()
	}

	itemType := sub.ItemType
	if itemType == "" {
		itemType = item.Kind
	}

	return Result{
		LearnerID:   sub.LearnerID,
		CourseID:    item.CourseID,
		ItemID:      item.ID,
		ItemType:    itemType,
		Outcomes:    outcomes,
		Score:       Percentage(total, maxPoints),
		MaxScore:    maxPoints,
		SubmittedAt: sub.SubmittedAt,
		TimeSpent:   sub.TimeSpent,
	}
}

// answerFor finds the learner's answer to q. Questions authored before ids
// were assigned fall back to the answer at the same position, provided that
// answer does not name a question itself.
// TODO: drop the positional fallback once all stored questions carry ids.
func answerFor(q Question, position int, byID map[string]Answer, ordered []Answer) *string {
	if q.ID != "" {
		if a, ok := byID[q.ID]; ok {
			return a.RawAnswer
		}
		return nil
	}
	if position < len(ordered) && ordered[position].QuestionID == "" {
		return ordered[position].RawAnswer
	}
	return nil
}

// Percentage is round(100*points/maxPoints), or 0 when nothing is scorable.
func Percentage(points, maxPoints int) int {
	if maxPoints <= 0 {
		return 0
	}
	return roundPercent(int64(points), int64(maxPoints))
}

// roundPercent rounds half away from zero on the exact quotient.
func roundPercent(part, whole int64) int {
	return int(decimal.NewFromInt(part * 100).
		Div(decimal.NewFromInt(whole)).
		Round(0).
		IntPart())
}
