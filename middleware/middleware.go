package middleware

import (
	"crypto/rand"
)

type Middleware struct {
	csrfKey        []byte
	trustedOrigins []string
}

// NewMiddleware creates the middleware set. The csrf cookie is trusted from the
// given origins (host:port) in addition to the request host.
func NewMiddleware(trustedOrigins ...string) *Middleware {
	csrfKey := make([]byte, 32)
	n, err := rand.Read(csrfKey)
	if err != nil {
		panic(err)
	}
	if n != 32 {
		panic("unable to read 32 bytes for CSRF key")
	}

	if len(trustedOrigins) == 0 {
		trustedOrigins = []string{"localhost:5000", "127.0.0.1:5000"}
	}

	return &Middleware{
		csrfKey:        csrfKey,
		trustedOrigins: trustedOrigins,
	}
}
