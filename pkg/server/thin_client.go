package server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"

	clientdist "github.com/vango-dev/homepage/client/dist"
)

var thinClientETag = func() string {
	sum := sha256.Sum256(clientdist.ClientJS)
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:16]))
}()

func (s *Server) serveThinClient(w http.ResponseWriter, r *http.Request) {
	if len(clientdist.ClientJS) == 0 {
		http.Error(w, "Thin client not available", http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", thinClientETag)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if s.config.DevMode {
		w.Header().Set("Cache-Control", "no-store")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
	}

	if etagMatches(r.Header.Get("If-None-Match"), thinClientETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(clientdist.ClientJS)
}

func etagMatches(ifNoneMatchHeader, etag string) bool {
	if ifNoneMatchHeader == "" || etag == "" {
		return false
	}
	// If-None-Match: "abc", W/"def"
	for _, part := range strings.Split(ifNoneMatchHeader, ",") {
		candidate := strings.TrimSpace(part)
		if candidate == "*" || candidate == etag {
			return true
		}
		if strings.HasPrefix(candidate, "W/") && strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
