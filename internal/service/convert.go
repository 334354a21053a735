package service

import (
	"fmt"
	"learnhub_backend/internal/assessment"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/util"

	"github.com/jinzhu/copier"
)

// Actor 当前请求的调用者，由 JWT 声明构造
type Actor struct {
	ID    string
	Name  string
	Admin bool
}

func ActorFromClaims(claims *util.Claims) Actor {
	return Actor{ID: claims.UserID, Name: claims.Name, Admin: claims.IsAdmin()}
}

func (a Actor) learner() assessment.Learner {
	return assessment.Learner{ID: a.ID, Name: a.Name}
}

func courseToCore(c *model.Course) assessment.LearningItem {
	return assessment.LearningItem{
		ID:         c.ID,
		Kind:       assessment.KindCourse,
		CourseID:   c.ID,
		Visibility: assessment.Visibility(c.Visibility),
		AssignedTo: []string(c.AssignedTo),
	}
}

func itemToCore(item *model.Item) assessment.LearningItem {
	return assessment.LearningItem{
		ID:         item.ID,
		Kind:       assessment.ItemKind(item.Kind),
		CourseID:   item.CourseID,
		Visibility: assessment.Visibility(item.Visibility),
		AssignedTo: []string(item.AssignedTo),
	}
}

func questionToCore(q model.Question) assessment.Question {
	id := q.ID
	// 早期题目没有稳定 ID，按位置作答
	if q.Unstable {
		id = ""
	}
	return assessment.Question{
		ID:            id,
		Type:          assessment.QuestionType(q.QuestionType),
		Text:          q.Content,
		Options:       []string(q.Options),
		CorrectAnswer: []string(q.CorrectAnswer),
		Points:        q.Points,
		CodeTemplate:  q.CodeTemplate,
		TestCases:     []byte(q.TestCases),
	}
}

func gradableToCore(item *model.Item) assessment.GradableItem {
	questions := make([]assessment.Question, 0, len(item.Questions))
	for _, q := range item.Questions {
		questions = append(questions, questionToCore(q))
	}
	return assessment.GradableItem{
		LearningItem: itemToCore(item),
		Title:        item.Title,
		Questions:    questions,
	}
}

func resultToCore(r model.Result) (assessment.Result, error) {
	outcomes := make([]assessment.Outcome, 0, len(r.Answers))
	if err := copier.Copy(&outcomes, []model.ResultAnswer(r.Answers)); err != nil {
		return assessment.Result{}, fmt.Errorf("result %s: %w", r.ID, err)
	}
	return assessment.Result{
		LearnerID:   r.LearnerID,
		CourseID:    r.CourseID,
		ItemID:      r.ItemID,
		ItemType:    assessment.ItemKind(r.ItemType),
		Outcomes:    outcomes,
		Score:       r.Score,
		MaxScore:    r.MaxScore,
		SubmittedAt: r.SubmittedAt,
		TimeSpent:   r.TimeSpent,
	}, nil
}

func resultsToCore(rows []model.Result) ([]assessment.Result, error) {
	out := make([]assessment.Result, 0, len(rows))
	for _, r := range rows {
		res, err := resultToCore(r)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func resultToModel(r assessment.Result) (*model.Result, error) {
	answers := make([]model.ResultAnswer, 0, len(r.Outcomes))
	if err := copier.Copy(&answers, r.Outcomes); err != nil {
		return nil, err
	}
	return &model.Result{
		LearnerID:   r.LearnerID,
		CourseID:    r.CourseID,
		ItemID:      r.ItemID,
		ItemType:    model.ItemKind(r.ItemType),
		Answers:     answers,
		Score:       r.Score,
		MaxScore:    r.MaxScore,
		TimeSpent:   r.TimeSpent,
		SubmittedAt: r.SubmittedAt,
	}, nil
}

// authorize 依次校验课程与学习项的可见性；管理员不经过此检查
func authorize(actor Actor, course *model.Course, item *model.Item) error {
	if actor.Admin {
		return nil
	}
	learner := actor.learner()
	if course != nil && !assessment.CanAccess(learner, courseToCore(course)) {
		return util.ErrAccessDenied
	}
	if item != nil && !assessment.CanAccess(learner, itemToCore(item)) {
		return util.ErrAccessDenied
	}
	return nil
}
