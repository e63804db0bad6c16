package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go-clinic-management/pkg/flash"
)

type bodyLimitKey struct{}

// limitedBody records whether a reader downstream ran into the size cap.
type limitedBody struct {
	io.ReadCloser
	limit    int64
	exceeded bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		b.exceeded = true
	}
	return n, err
}

// LimitRequestBody caps every request body at maxBytes. A request that announces
// a larger body is sent back to its form before anything reads it.
func LimitRequestBody(flashStore *flash.Store, maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				rejectTooLarge(w, r, flashStore, maxBytes)
				return
			}

			if r.Body != nil && r.Body != http.NoBody {
				body := &limitedBody{ReadCloser: http.MaxBytesReader(w, r.Body, maxBytes), limit: maxBytes}
				r = r.WithContext(context.WithValue(r.Context(), bodyLimitKey{}, body))
				r.Body = body
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RejectOversizedBody answers a request whose streamed body overran the cap
// set by LimitRequestBody. It reports false when the body stayed within it.
func RejectOversizedBody(w http.ResponseWriter, r *http.Request, flashStore *flash.Store) bool {
	body, ok := r.Context().Value(bodyLimitKey{}).(*limitedBody)
	if !ok || !body.exceeded {
		return false
	}
	rejectTooLarge(w, r, flashStore, body.limit)
	return true
}

func rejectTooLarge(w http.ResponseWriter, r *http.Request, flashStore *flash.Store, maxBytes int64) {
	flashStore.Danger(w, r, fmt.Sprintf("Upload is too large (max %d MB)", maxBytes>>20))
	http.Redirect(w, r, FormPage(r), http.StatusSeeOther)
}
