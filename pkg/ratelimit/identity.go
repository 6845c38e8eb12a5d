package ratelimit

import (
	"fmt"
	"hash/fnv"
	"net"
	"net/http"
	"strings"
)

// ClientIdentity derives the rate-limit key for a request: the forwarded
// client address when present, else the connection's remote address, else a
// stable pseudo-identity hashed from request metadata. An identity-less
// request is never exempted; the fallback participates in the same counting.
func ClientIdentity(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		// The first entry is the originating client.
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return "ip:" + first
		}
	}

	if real := strings.TrimSpace(r.Header.Get("X-Real-Ip")); real != "" {
		return "ip:" + real
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return "ip:" + host
	}

	h := fnv.New64a()
	h.Write([]byte(r.UserAgent()))
	h.Write([]byte(r.Header.Get("Accept-Language")))
	h.Write([]byte(r.Header.Get("Accept")))
	return fmt.Sprintf("anon:%x", h.Sum64())
}
