// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/routes"
	"github.com/resvlab/resv/internal/session"
)

// AlignFooter returns a single-line string where `right` is right-aligned
// within `width` columns and `left` is at the start. If width is too small
// a single space separates the tokens.
func AlignFooter(left, right string, width int) string {
	leftLen := utf8.RuneCountInString(left)
	rightLen := utf8.RuneCountInString(right)
	spaces := width - leftLen - rightLen
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}

// sessionBadge renders the footer's right-hand session token: the user
// name plus, when the bearer token is a readable JWT, its expiry time.
// The token is not verified here; display only.
func sessionBadge(s *session.Store) string {
	sess := s.Session()
	if !sess.IsLoggedIn() {
		return i18n.T("session.not_logged_in")
	}
	badge := sess.User.Username
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.Token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			badge += " · " + i18n.T("session.expires") + " " + exp.Format("15:04")
		}
	}
	return badge
}

// queryParam pulls one query value out of a path string. Empty when
// the path has no query or the key is absent.
func queryParam(path, key string) string {
	q := strings.IndexByte(path, '?')
	if q < 0 {
		return ""
	}
	for _, pair := range strings.Split(path[q+1:], "&") {
		k, v, found := strings.Cut(pair, "=")
		if found && k == key {
			return v
		}
	}
	return ""
}

// pathFor reassembles a concrete path from a route pattern and its
// matched parameters.
func pathFor(r routes.Route, params map[string]string) string {
	segs := strings.Split(strings.Trim(r.Path, "/"), "/")
	var b strings.Builder
	for _, seg := range segs {
		if seg == "" {
			continue
		}
		b.WriteByte('/')
		if seg[0] == ':' {
			b.WriteString(params[seg[1:]])
		} else {
			b.WriteString(seg)
		}
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
