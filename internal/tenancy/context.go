package tenancy

import "context"

type ctxKey string

const (
	vendorKey  ctxKey = "vendorconnect.vendor_id"
	sessionKey ctxKey = "vendorconnect.session_id"
)

// WithVendorID stores the signed-in vendor id in context.
func WithVendorID(ctx context.Context, vendorID int64) context.Context {
	return context.WithValue(ctx, vendorKey, vendorID)
}

// VendorIDFromContext extracts the vendor id if present. Non-positive ids count as absent.
func VendorIDFromContext(ctx context.Context) (int64, bool) {
	val := ctx.Value(vendorKey)
	if val == nil {
		return 0, false
	}
	vendorID, ok := val.(int64)
	return vendorID, ok && vendorID > 0
}

// WithSessionID stores the chat widget session id in context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionIDFromContext extracts the widget session id if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionKey).(string)
	return sessionID, ok && sessionID != ""
}
