package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestPartialWriteErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := &PartialWriteError{Step: "create invoice", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("Expected PartialWriteError to unwrap to its cause")
	}
	msg := err.Error()
	if msg != `payment workflow failed at step "create invoice": connection reset` {
		t.Errorf("Unexpected message: %q", msg)
	}
}

func TestStatusConstants(t *testing.T) {
	statuses := []NotificationStatus{StatusPending, StatusOverdue, StatusCompleted, StatusDismissed}
	expected := []string{"pending", "overdue", "completed", "dismissed"}

	for i, status := range statuses {
		if string(status) != expected[i] {
			t.Errorf("Expected %q, got %q", expected[i], status)
		}
	}
}
