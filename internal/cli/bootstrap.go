// Package cli provides the cobra commands of the commandcenter binary.
package cli

import (
	"context"
	"strings"

	"github.com/example/commandcenter/internal/ctxutil"
	"github.com/example/commandcenter/internal/wire"
)

// globalActorID is recorded as the actor of every write made by this invocation.
// Set once by the root command's --actor flag.
var globalActorID string

// SetActorID stores the actor for the current invocation.
func SetActorID(actor string) {
	globalActorID = strings.TrimSpace(actor)
}

// GetActorID returns the stored actor, or empty if none was given.
func GetActorID() string {
	return globalActorID
}

// NewContext creates a context.Background() with the current actor embedded.
// Commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	ctx := context.Background()
	if globalActorID != "" {
		return ctxutil.WithActorID(ctx, globalActorID)
	}
	return ctx
}

// services returns the wired services, building them on first use.
func services() (*wire.Services, error) {
	return wire.Get()
}
