package service

import (
	"testing"

	"taskboard/internal/domain"
)

func TestAuthzPredicates(t *testing.T) {
	const (
		owner  = int64(1)
		shared = int64(2)
		other  = int64(3)
	)

	task := &domain.Task{ID: 10, OwnerID: owner, SharedWith: []int64{shared}}

	cases := []struct {
		name string
		user int64
		view bool
		edit bool
		del  bool
	}{
		{"owner", owner, true, true, true},
		{"shared user", shared, true, true, false},
		{"stranger", other, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanView(task, tc.user); got != tc.view {
				t.Errorf("CanView = %v; want %v", got, tc.view)
			}
			if got := CanEdit(task, tc.user); got != tc.edit {
				t.Errorf("CanEdit = %v; want %v", got, tc.edit)
			}
			if got := CanDelete(task, tc.user); got != tc.del {
				t.Errorf("CanDelete = %v; want %v", got, tc.del)
			}
		})
	}
}

func TestAuthzLegacyOwnerFallback(t *testing.T) {
	// row predating the owner column: only the legacy assignee is set
	task := &domain.Task{ID: 11, LegacyUserID: 7}

	if !CanDelete(task, 7) {
		t.Error("legacy assignee should hold ownership rights")
	}
	if CanDelete(task, 8) {
		t.Error("non-assignee should not hold ownership rights")
	}

	// once owner is set it wins over the legacy field
	task.OwnerID = 9
	if CanDelete(task, 7) {
		t.Error("legacy assignee should lose rights once owner is set")
	}
	if !CanDelete(task, 9) {
		t.Error("owner should hold ownership rights")
	}
}

func TestAuthzOwnerlessTask(t *testing.T) {
	task := &domain.Task{ID: 12, SharedWith: []int64{2}}

	if CanDelete(task, 0) {
		t.Error("zero user id must never pass the ownership check")
	}
	if !CanEdit(task, 2) {
		t.Error("shared user should still be able to edit an ownerless task")
	}
}
