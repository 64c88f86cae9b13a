package testutil

import (
	"context"

	"github.com/oficinago/oficinago/internal/types"
)

// SetupContext returns a context carrying a fresh request ID, matching what
// the request middleware injects in production
func SetupContext() context.Context {
	return context.WithValue(context.Background(), types.CtxRequestID, types.GenerateUUID())
}
