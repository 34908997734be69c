//go:build !solution

package library

import "errors"

var (
	// ErrInvalidCapacity is returned by New for a non-positive capacity.
	ErrInvalidCapacity = errors.New("library: capacity must be positive")

	// ErrCancelled is returned by BeginRead and BeginWrite when the caller's
	// context is done before admission. The returned error also wraps ctx.Err().
	ErrCancelled = errors.New("library: admission cancelled")

	// ErrUnknownIdentifier is returned by EndRead and EndWrite for an actor that
	// is not inside in the matching role.
	ErrUnknownIdentifier = errors.New("library: unknown identifier")

	// ErrIdentifierInUse is returned by BeginRead and BeginWrite when the actor
	// is already waiting or inside.
	ErrIdentifierInUse = errors.New("library: identifier already in use")
)
