package tenancy

import (
	"context"
	"testing"
)

func TestWithVendorIDAndVendorIDFromContext(t *testing.T) {
	ctx := context.Background()
	ctx = WithVendorID(ctx, 7)

	got, ok := VendorIDFromContext(ctx)
	if !ok {
		t.Fatalf("expected vendor id to be present")
	}
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestVendorIDFromContext_ZeroOrMissing(t *testing.T) {
	ctx := context.Background()
	if _, ok := VendorIDFromContext(ctx); ok {
		t.Fatalf("expected missing vendor id to return false")
	}

	ctx = context.WithValue(ctx, vendorKey, "7")
	if _, ok := VendorIDFromContext(ctx); ok {
		t.Fatalf("expected non-int64 vendor id to return false")
	}

	ctx = WithVendorID(context.Background(), 0)
	if _, ok := VendorIDFromContext(ctx); ok {
		t.Fatalf("expected zero vendor id to return false")
	}
}

func TestSessionIDFromContext(t *testing.T) {
	if _, ok := SessionIDFromContext(context.Background()); ok {
		t.Fatalf("expected missing session id to return false")
	}
	ctx := WithSessionID(context.Background(), "sess-1")
	got, ok := SessionIDFromContext(ctx)
	if !ok || got != "sess-1" {
		t.Fatalf("expected sess-1, got %q (%v)", got, ok)
	}
	if _, ok := SessionIDFromContext(WithSessionID(context.Background(), "")); ok {
		t.Fatalf("expected empty session id to return false")
	}
}
