// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ingest

import (
	"fmt"
)

// ValidationError reports a missing required payload field. It aborts
// the request before any side effect happens.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Code returns the wire error code, e.g. "missing_title".
func (e *ValidationError) Code() string {
	return "missing_" + e.Field
}

// Message returns the human-readable wire error message.
func (e *ValidationError) Message() string {
	return fmt.Sprintf("The %q field is required.", e.Field)
}

// StoreError wraps a content store failure during base item creation.
// Unlike enrichment failures it is fatal to the request.
type StoreError struct {
	Stage string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure at %s: %v", e.Stage, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
