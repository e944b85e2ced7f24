package http

import (
	"net/http"
	"strconv"

	"github.com/cimillas/eventdesk/internal/domain"
)

const (
	userIDHeader   = "X-User-ID"
	userRoleHeader = "X-User-Role"
)

// sessionFromRequest reads the caller identity set by the gateway.
// A missing or malformed header yields no session; handlers that need
// one reply 401.
func sessionFromRequest(r *http.Request) (domain.Session, bool) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return domain.Session{}, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Session{}, false
	}

	role := domain.RoleUser
	if rawRole := r.Header.Get(userRoleHeader); rawRole != "" {
		parsed, err := domain.ParseRole(rawRole)
		if err != nil {
			return domain.Session{}, false
		}
		role = parsed
	}

	return domain.Session{UserID: userID, Role: role}, true
}

func requireSession(w http.ResponseWriter, r *http.Request) (domain.Session, bool) {
	session, ok := sessionFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
	}
	return session, ok
}
