package audit

import (
	"context"
	"testing"
)

func TestMongoRecorderNoopWhenCollectionNil(t *testing.T) {
	if err := NewMongoRecorder(nil).Record(context.Background(), &Entry{Operation: "createUser"}); err != nil {
		t.Fatalf("expected no error for nil collection, got %v", err)
	}
	var r *MongoRecorder
	if err := r.Record(context.Background(), &Entry{}); err != nil {
		t.Fatalf("expected nil recorder to be a no-op, got %v", err)
	}
}

func TestMemoryRecorder(t *testing.T) {
	r := NewMemoryRecorder()
	ctx := context.Background()
	_ = r.Record(ctx, &Entry{Operation: "createUser", Actor: "admin-1", Target: "a@x.com", Status: "OK"})
	_ = r.Record(ctx, &Entry{Operation: "updateUser", Actor: "admin-1", Target: "u1", Status: "INTERNAL"})

	got := r.Entries()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Operation != "createUser" || got[1].Status != "INTERNAL" {
		t.Fatalf("unexpected entries: %+v", got)
	}
	if got[0].At.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}
}
