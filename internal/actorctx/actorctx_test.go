package actorctx

import (
	"context"
	"testing"
)

func TestUserIDRoundTrip(t *testing.T) {
	if _, ok := UserIDFrom(context.Background()); ok {
		t.Fatalf("empty context reported a user")
	}

	ctx := WithUserID(context.Background(), "user-1")
	if id, ok := UserIDFrom(ctx); !ok || id != "user-1" {
		t.Fatalf("UserIDFrom = %q, %v", id, ok)
	}

	if _, ok := UserIDFrom(WithUserID(context.Background(), "")); ok {
		t.Fatalf("blank id must not count")
	}
}
