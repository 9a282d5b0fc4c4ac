package service

import "taskboard/internal/domain"

// Authorization predicates over an already-loaded task. Pure; the only
// normalization is resolving the owner through Task.Owner, which falls back
// to the legacy single-assignee field.

// CanView reports whether userID may read the task. Same rule as CanEdit.
func CanView(t *domain.Task, userID int64) bool {
	return CanEdit(t, userID)
}

// CanEdit is true for the owner and for every member of sharedWith.
func CanEdit(t *domain.Task, userID int64) bool {
	if CanDelete(t, userID) {
		return true
	}
	for _, id := range t.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// CanDelete is true only for the owner. Sharing and attachment deletion use
// the same rule.
func CanDelete(t *domain.Task, userID int64) bool {
	owner := t.Owner()
	return owner != 0 && owner == userID
}
