package api_test

import (
	"net/http"
	"testing"

	"github.com/Harsh7114/Inventory-Tracker/internal/alerts"
)

func TestNotifications_CreateListAndRead(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/notifications", alerts.Fields{
		Message:  "Low stock alert: Atta is down to 2 (reorder at 5)",
		Severity: alerts.SeverityWarning,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[alerts.Notification](t, rec)
	if created.Read {
		t.Error("new notifications must start unread")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/notifications", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	list := decodeBody[[]alerts.Notification](t, rec)
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}

	rec = doJSON(t, h, http.MethodPatch, "/api/notifications/"+created.ID+"/read", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark read status = %d, want 200", rec.Code)
	}
	marked := decodeBody[alerts.Notification](t, rec)
	if !marked.Read {
		t.Error("notification should be read after PATCH .../read")
	}

	// Marking again is a no-op, not an error.
	rec = doJSON(t, h, http.MethodPatch, "/api/notifications/"+created.ID+"/read", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("second mark read status = %d, want 200", rec.Code)
	}
}

func TestNotifications_CreateRejectsUnknownSeverity(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/notifications", map[string]string{
		"message": "something",
		"type":    "catastrophic",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestNotifications_UnknownID(t *testing.T) {
	t.Parallel()
	h, _, _ := newTestServer(t)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/notifications/nope"},
		{http.MethodPatch, "/api/notifications/nope/read"},
		{http.MethodDelete, "/api/notifications/nope"},
	} {
		rec := doJSON(t, h, tc.method, tc.path, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s status = %d, want 404", tc.method, tc.path, rec.Code)
		}
	}
}

func TestNotifications_Delete(t *testing.T) {
	t.Parallel()
	h, _, notes := newTestServer(t)

	note, err := notes.Create(t.Context(), alerts.Fields{Message: "out of milk", Severity: alerts.SeverityInfo})
	if err != nil {
		t.Fatal(err)
	}

	rec := doJSON(t, h, http.MethodDelete, "/api/notifications/"+note.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	list, err := notes.List(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("store should be empty after delete, got %d", len(list))
	}
}
