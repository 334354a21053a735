package assessment

// ComputeProgress derives completion for one learner in one course. Items the
// learner cannot access never count toward the total.
func ComputeProgress(learnerID, courseID string, items []LearningItem, results []Result) ProgressEntry {
	entry := ProgressEntry{CourseID: courseID}
	learner := Learner{ID: learnerID}

	counted := make(map[string]bool)
	for _, it := range items {
		if it.CourseID != courseID || !it.Kind.Gradable() || !CanAccess(learner, it) {
			continue
		}
		if _, seen := counted[it.ID]; seen {
			continue
		}
		counted[it.ID] = false
		entry.TotalCount++
	}

	for _, r := range results {
		if r.LearnerID != learnerID {
			continue
		}
		done, ok := counted[r.ItemID]
		if !ok {
			continue
		}
		if !done {
			counted[r.ItemID] = true
			entry.CompletedCount++
		}
		if entry.LastActivity == nil || r.SubmittedAt.After(*entry.LastActivity) {
			at := r.SubmittedAt
			entry.LastActivity = &at
		}
	}
	return entry
}
