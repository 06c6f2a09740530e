package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vendorconnect/vendorconnect-platform/internal/tenancy"
)

func TestVendorIdentity(t *testing.T) {
	cases := []struct {
		name   string
		header string
		wantID int64
		wantOK bool
	}{
		{name: "valid", header: "3", wantID: 3, wantOK: true},
		{name: "padded", header: " 12 ", wantID: 12, wantOK: true},
		{name: "missing", header: ""},
		{name: "garbage", header: "abc"},
		{name: "negative", header: "-4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var (
				gotID int64
				gotOK bool
			)
			handler := VendorIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, gotOK = tenancy.VendorIDFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodPost, "/api/chatbot/message", nil)
			if tc.header != "" {
				req.Header.Set(VendorIDHeader, tc.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if gotOK != tc.wantOK || gotID != tc.wantID {
				t.Fatalf("expected (%d, %v), got (%d, %v)", tc.wantID, tc.wantOK, gotID, gotOK)
			}
		})
	}
}
