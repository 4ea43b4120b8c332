package services

import (
	"errors"
	"testing"

	"medibook-server/internal/models"
)

func TestNotificationStore_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationStore(db)
	user := seedUser(t, db, models.RolePatient)

	err := store.Notify(user.ID, models.RolePatient, "Appointment confirmed", "See you tomorrow.", "appointment", "a-1")
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	list, err := store.ListForUser(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Appointment confirmed" || list[0].IsRead {
		t.Fatalf("unexpected notifications: %+v", list)
	}

	read, err := store.MarkRead(list[0].ID, user.ID)
	if err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if !read.IsRead || read.ReadAt == nil {
		t.Fatalf("notification not marked read: %+v", read)
	}
}

func TestNotificationStore_MarkReadScopedToRecipient(t *testing.T) {
	db := newTestDB(t)
	store := NewNotificationStore(db)
	owner := seedUser(t, db, models.RolePatient)
	intruder := seedUser(t, db, models.RolePatient)

	if err := store.Notify(owner.ID, models.RolePatient, "t", "b", "", ""); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	list, _ := store.ListForUser(owner.ID)

	if _, err := store.MarkRead(list[0].ID, intruder.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user's notification, got %v", err)
	}
}
