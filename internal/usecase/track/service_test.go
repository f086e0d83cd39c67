package track

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/history"
)

type mockRecorder struct {
	users  []string
	events []history.Event
	err    error
}

func (m *mockRecorder) Record(_ context.Context, userID string, ev history.Event) error {
	if m.err != nil {
		return m.err
	}
	m.users = append(m.users, userID)
	m.events = append(m.events, ev)
	return nil
}

func TestTrack_Appends(t *testing.T) {
	rec := &mockRecorder{}
	svc := New(rec)
	at := time.Date(2024, 2, 2, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	if err := svc.Track(context.Background(), "u1", "view", "2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Track(context.Background(), "", "purchase", "3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rec.events) != 2 {
		t.Fatalf("events = %d", len(rec.events))
	}
	if rec.users[0] != "u1" || rec.users[1] != domain.DefaultUserID {
		t.Errorf("users = %v", rec.users)
	}
	ev := rec.events[0]
	if ev.Type != history.View || ev.ProductID != "2" || !ev.Timestamp.Equal(at) || ev.ID == "" {
		t.Errorf("event = %+v", ev)
	}
}

func TestTrack_Validation(t *testing.T) {
	tests := []struct {
		name, eventType, productID, field string
	}{
		{"missing type", "", "2", "type"},
		{"blank type", "  ", "2", "type"},
		{"missing product", "view", "", "productId"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &mockRecorder{}
			err := New(rec).Track(context.Background(), "u1", tc.eventType, tc.productID)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("err = %v, want validation error on %s", err, tc.field)
			}
			if len(rec.events) != 0 {
				t.Error("rejected event was appended")
			}
		})
	}
}

func TestTrack_CustomTypeAccepted(t *testing.T) {
	rec := &mockRecorder{}
	if err := New(rec).Track(context.Background(), "u1", "wishlist", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.events[0].Type.IsKnown() {
		t.Error("wishlist should be stored as an unknown type")
	}
}

func TestTrack_StoreError(t *testing.T) {
	boom := errors.New("down")
	err := New(&mockRecorder{err: boom}).Track(context.Background(), "u1", "view", "1")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
