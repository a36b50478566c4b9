// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ingest

import "crypto/subtle"

// Authenticator validates the shared-secret webhook credential. A single
// global secret guards the endpoint; there is no per-caller keying.
type Authenticator struct {
	secret string
}

// NewAuthenticator returns an authenticator for the configured secret.
// An empty secret disables authentication entirely — a documented
// development mode in which every request is allowed.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: secret}
}

// Enabled reports whether a secret is configured.
func (a *Authenticator) Enabled() bool {
	return a.secret != ""
}

// Allow reports whether the request may proceed. The header credential
// takes precedence; the body credential is consulted only when no
// header was sent. Comparison is constant-time.
func (a *Authenticator) Allow(headerKey, bodyKey string) bool {
	if a.secret == "" {
		return true
	}

	presented := headerKey
	if presented == "" {
		presented = bodyKey
	}

	return subtle.ConstantTimeCompare([]byte(presented), []byte(a.secret)) == 1
}
