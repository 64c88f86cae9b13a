package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceStatusValidate(t *testing.T) {
	valid := []ServiceStatus{
		ServiceStatusUnderReview,
		ServiceStatusAwaitingPart,
		ServiceStatusInProgress,
		ServiceStatusDone,
		ServiceStatusDelivered,
	}
	for _, s := range valid {
		assert.NoError(t, s.Validate(), "status %q", s)
	}

	assert.Error(t, ServiceStatus("").Validate())
	assert.Error(t, ServiceStatus("finalizado").Validate(), "labels are case sensitive")
	assert.Error(t, ServiceStatus("Cancelado").Validate())
}

func TestAttachmentKindFromMIME(t *testing.T) {
	assert.Equal(t, AttachmentKindImage, AttachmentKindFromMIME("image/jpeg"))
	assert.Equal(t, AttachmentKindVideo, AttachmentKindFromMIME("video/mp4"))
	assert.Equal(t, AttachmentKindDocument, AttachmentKindFromMIME("application/pdf"))
	assert.Equal(t, AttachmentKindDocument, AttachmentKindFromMIME(""))
}

func TestSniffAttachmentKind(t *testing.T) {
	// PNG magic bytes
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

	kind, mime := SniffAttachmentKind(png, "")
	assert.Equal(t, AttachmentKindImage, kind)
	assert.Equal(t, "image/png", mime)

	// declared type wins over the header bytes
	kind, mime = SniffAttachmentKind(png, "application/pdf")
	assert.Equal(t, AttachmentKindDocument, kind)
	assert.Equal(t, "application/pdf", mime)

	// generic declared type falls through to sniffing
	kind, mime = SniffAttachmentKind(png, "application/octet-stream")
	assert.Equal(t, AttachmentKindImage, kind)
	assert.Equal(t, "image/png", mime)

	// unidentifiable bytes
	kind, mime = SniffAttachmentKind([]byte("plain text"), "")
	assert.Equal(t, AttachmentKindDocument, kind)
	assert.Equal(t, "application/octet-stream", mime)
}
