// Package delivery sends a rendered receipt to the client through a
// prioritized cascade of channels: native share through the messaging
// gateway, saved file plus prefilled deep link, and text-only deep link.
package delivery

import (
	"context"
)

// ShareFile is one file-shaped payload offered to the native share tier
type ShareFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ShareGateway is the platform share boundary. Capability must be checked
// before attempting a share, since an unsupported invocation may error rather
// than report false. A cancelled share surfaces as an ErrShareCancelled
// marked error, which is a terminal non-error outcome for the cascade.
type ShareGateway interface {
	CanShareFiles(ctx context.Context, files []ShareFile) bool
	Share(ctx context.Context, phone string, files []ShareFile, title, text string) error
}
