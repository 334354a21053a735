package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeProgress(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	items := []LearningItem{
		{ID: "t1", Kind: KindTest, CourseID: "c1", Visibility: Public},
		{ID: "a1", Kind: KindAssignment, CourseID: "c1", Visibility: Private, AssignedTo: []string{"u1"}},
		{ID: "a2", Kind: KindAssignment, CourseID: "c1", Visibility: Private, AssignedTo: []string{"u2"}},
		{ID: "cls", Kind: KindClass, CourseID: "c1", Visibility: Public},
		{ID: "t9", Kind: KindTest, CourseID: "c2", Visibility: Public},
	}
	results := []Result{
		{LearnerID: "u1", ItemID: "t1", SubmittedAt: t0},
		{LearnerID: "u1", ItemID: "t9", SubmittedAt: t0.Add(48 * time.Hour)},
		{LearnerID: "u1", ItemID: "a2", SubmittedAt: t0.Add(72 * time.Hour)},
		{LearnerID: "u2", ItemID: "a1", SubmittedAt: t0.Add(96 * time.Hour)},
	}

	p := ComputeProgress("u1", "c1", items, results)

	assert.Equal(t, "c1", p.CourseID)
	assert.Equal(t, 2, p.TotalCount, "only accessible gradable items of c1 count")
	assert.Equal(t, 1, p.CompletedCount)
	require.NotNil(t, p.LastActivity)
	assert.Equal(t, t0, *p.LastActivity)
	assert.Equal(t, 50, p.Percent())
}

func TestComputeProgressLastActivityIsLatest(t *testing.T) {
	t0 := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	items := []LearningItem{
		{ID: "t1", Kind: KindTest, CourseID: "c1", Visibility: Public},
		{ID: "t2", Kind: KindTest, CourseID: "c1", Visibility: Public},
		{ID: "t3", Kind: KindTest, CourseID: "c1", Visibility: Public},
	}
	results := []Result{
		{LearnerID: "u1", ItemID: "t2", SubmittedAt: t0.Add(time.Hour)},
		{LearnerID: "u1", ItemID: "t1", SubmittedAt: t0},
	}

	p := ComputeProgress("u1", "c1", items, results)

	assert.Equal(t, 3, p.TotalCount)
	assert.Equal(t, 2, p.CompletedCount)
	assert.Equal(t, t0.Add(time.Hour), *p.LastActivity)
	assert.Equal(t, 67, p.Percent())
}

func TestComputeProgressEmptyCourse(t *testing.T) {
	assert.NotPanics(t, func() {
		p := ComputeProgress("u1", "c1", nil, nil)
		assert.Equal(t, 0, p.TotalCount)
		assert.Equal(t, 0, p.Percent())
		assert.Nil(t, p.LastActivity)
	})

	// Results for items the learner cannot see do not leak into the count.
	items := []LearningItem{{ID: "t1", Kind: KindTest, CourseID: "c1", Visibility: Private}}
	p := ComputeProgress("u1", "c1", items, []Result{{LearnerID: "u1", ItemID: "t1"}})
	assert.Equal(t, 0, p.TotalCount)
	assert.Equal(t, 0, p.CompletedCount)
	assert.Equal(t, 0, p.Percent())
}

func TestComputeProgressIgnoresDuplicateItemsAndResults(t *testing.T) {
	items := []LearningItem{
		{ID: "t1", Kind: KindTest, CourseID: "c1", Visibility: Public},
		{ID: "t1", Kind: KindTest, CourseID: "c1", Visibility: Public},
	}
	results := []Result{
		{LearnerID: "u1", ItemID: "t1"},
		{LearnerID: "u1", ItemID: "t1"},
	}
	p := ComputeProgress("u1", "c1", items, results)
	assert.Equal(t, 1, p.TotalCount)
	assert.Equal(t, 1, p.CompletedCount)
	assert.Equal(t, 100, p.Percent())
}
