package service

import (
	"learnhub_backend/internal/assessment"
	"learnhub_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestResultConversionRoundTripsOutcomes(t *testing.T) {
	row := model.Result{
		ID:        "r1",
		LearnerID: "u1",
		CourseID:  "c1",
		ItemID:    "t1",
		ItemType:  model.ItemTest,
		Answers: datatypes.JSONSlice[model.ResultAnswer]{
			{QuestionID: "q1", RawAnswer: strPtr("B"), IsCorrect: true, PointsAwarded: 2},
			{QuestionID: "q2"},
		},
		Score:       67,
		MaxScore:    3,
		SubmittedAt: fixedNow,
	}

	core, err := resultsToCore([]model.Result{row})
	require.NoError(t, err)
	require.Len(t, core, 1)
	assert.Equal(t, assessment.KindTest, core[0].ItemType)
	require.Len(t, core[0].Outcomes, 2)
	assert.Equal(t, "B", *core[0].Outcomes[0].RawAnswer)
	assert.Equal(t, 2, core[0].Outcomes[0].PointsAwarded)
	assert.Nil(t, core[0].Outcomes[1].RawAnswer, "blank answers stay blank")

	back, err := resultToModel(core[0])
	require.NoError(t, err)
	assert.Equal(t, []model.ResultAnswer(row.Answers), []model.ResultAnswer(back.Answers))
	assert.Equal(t, row.Score, back.Score)
}

func TestToItemViewDropsQuestions(t *testing.T) {
	item := &model.Item{CourseID: "c1", Kind: model.ItemTest, Title: "Quiz", Questions: []model.Question{{Content: "?"}}}
	item.ID = "t1"

	view, err := toItemView(item)
	require.NoError(t, err)
	assert.Equal(t, "t1", view.ID)
	assert.Equal(t, "Quiz", view.Title)
	assert.Nil(t, view.Questions)
}
