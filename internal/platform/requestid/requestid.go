// Package requestid carries the X-Request-ID that ties a browser action to the
// API calls and SQL statements it causes.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header both ClubSync servers read and echo.
const Header = "X-Request-ID"

// maxLen bounds ids accepted from callers so they stay loggable.
const maxLen = 64

type ctxKey struct{}

// New issues a fresh id.
func New() string {
	return uuid.NewString()
}

// Accept returns id when a caller supplied a usable one, otherwise a fresh id.
func Accept(id string) string {
	if id == "" || len(id) > maxLen {
		return New()
	}
	for _, c := range id {
		if c < 0x21 || c > 0x7e {
			return New()
		}
	}
	return id
}

// With returns ctx carrying id.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns the id carried by ctx, or "".
func From(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
