package assessment

// CanAccess decides whether a learner may view or attempt an item.
//
// Administrators are not special-cased here; callers that serve admins skip
// the check entirely.
func CanAccess(learner Learner, item LearningItem) bool {
	if item.Visibility != Private {
		return item.Visibility == Public
	}
	for _, id := range item.AssignedTo {
		if id == learner.ID {
			return true
		}
	}
	return false
}

// VisibleItems keeps the items the learner can access, preserving order.
func VisibleItems(learner Learner, items []GradableItem) []GradableItem {
	out := make([]GradableItem, 0, len(items))
	for _, it := range items {
		if CanAccess(learner, it.LearningItem) {
			out = append(out, it)
		}
	}
	return out
}
