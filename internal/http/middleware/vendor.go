package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vendorconnect/vendorconnect-platform/internal/tenancy"
)

// VendorIDHeader carries the signed-in vendor id set by the storefront's auth layer.
const VendorIDHeader = "X-Vendor-ID"

// VendorIdentity stores the vendor id from VendorIDHeader in the request context.
// Missing or malformed ids leave the request anonymous.
func VendorIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(VendorIDHeader))
		if raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				r = r.WithContext(tenancy.WithVendorID(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	})
}
