package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"learninghub/models"
)

func (env *testEnv) seedNotification(t *testing.T, userID int64, title string) *models.Notification {
	t.Helper()
	n := &models.Notification{UserID: userID, Title: title, Message: "m", Type: "system"}
	if err := env.notifs.Create(context.Background(), n); err != nil {
		t.Fatalf("seeding notification: %v", err)
	}
	return n
}

func TestListNotifications_PerUserNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.seedNotification(t, 1, "first")
	env.seedNotification(t, 2, "other user")
	env.seedNotification(t, 1, "second")

	w := env.request(t, http.MethodGet, "/api/admin/notifications?userId=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var list []struct {
		Title     string `json:"title"`
		CreatedAt string `json:"createdAt"`
	}
	decodeJSON(t, w, &list)
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	if list[0].Title != "second" || list[1].Title != "first" {
		t.Errorf("expected newest first, got %+v", list)
	}
	// createdAt is serialized as a minute-precision timestamp.
	if _, err := time.Parse("2006-01-02 15:04", list[0].CreatedAt); err != nil {
		t.Errorf("unexpected createdAt format %q: %v", list[0].CreatedAt, err)
	}
}

func TestListNotifications_AllWhenNoUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedNotification(t, 1, "a")
	env.seedNotification(t, 2, "b")

	w := env.request(t, http.MethodGet, "/api/admin/notifications", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var list []models.Notification
	decodeJSON(t, w, &list)
	if len(list) != 2 {
		t.Errorf("expected all 2 notifications, got %d", len(list))
	}

	if w := env.request(t, http.MethodGet, "/api/admin/notifications?userId=abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("non-numeric userId: expected 400, got %d", w.Code)
	}
}

func TestUnreadCountAndMarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	env.seedNotification(t, 1, "a")
	env.seedNotification(t, 1, "b")
	env.seedNotification(t, 2, "c")

	w := env.request(t, http.MethodGet, "/api/admin/notifications/unread-count?userId=1", nil)
	var resp struct {
		Count int64 `json:"count"`
	}
	decodeJSON(t, w, &resp)
	if resp.Count != 2 {
		t.Fatalf("expected 2 unread, got %d", resp.Count)
	}

	w = env.request(t, http.MethodPost, "/api/admin/notifications/mark-all-read?userId=1", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "All notifications marked as read") {
		t.Fatalf("mark-all-read: got %d %s", w.Code, w.Body.String())
	}

	w = env.request(t, http.MethodGet, "/api/admin/notifications/unread-count?userId=1", nil)
	decodeJSON(t, w, &resp)
	if resp.Count != 0 {
		t.Errorf("expected 0 unread after mark-all-read, got %d", resp.Count)
	}

	// The other user's notification is untouched.
	w = env.request(t, http.MethodGet, "/api/admin/notifications/unread-count?userId=2", nil)
	decodeJSON(t, w, &resp)
	if resp.Count != 1 {
		t.Errorf("expected user 2 still at 1 unread, got %d", resp.Count)
	}
}

func TestMarkNotificationRead_RequiresMatchingUser(t *testing.T) {
	env := newTestEnv(t)
	n := env.seedNotification(t, 1, "a")

	// Wrong user: silent no-op, still 200.
	w := env.request(t, http.MethodPost, "/api/admin/notifications/mark-read/1?userId=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	count, _ := env.notifs.CountUnreadByUserID(context.Background(), 1)
	if count != 1 {
		t.Errorf("mismatched user must not mark read, unread=%d", count)
	}

	w = env.request(t, http.MethodPost, "/api/admin/notifications/mark-read/1?userId=1", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Notification marked as read") {
		t.Fatalf("mark-read: got %d %s", w.Code, w.Body.String())
	}
	count, _ = env.notifs.CountUnreadByUserID(context.Background(), n.UserID)
	if count != 0 {
		t.Errorf("expected 0 unread after mark-read, got %d", count)
	}
}

func TestNotificationEndpoints_RequireUserID(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/admin/notifications/unread-count",
		"/api/admin/notifications/mark-all-read",
		"/api/admin/notifications/mark-read/1",
	} {
		method := http.MethodGet
		if strings.Contains(path, "mark") {
			method = http.MethodPost
		}
		w := env.request(t, method, path, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400 without userId, got %d", path, w.Code)
		}
	}
}
