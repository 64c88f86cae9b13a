package types

import (
	"strings"

	"github.com/h2non/filetype"
)

// AttachmentKind classifies an attachment by its MIME major type. Document is
// the catch-all for anything that is neither image nor video, principally PDF.
type AttachmentKind string

const (
	AttachmentKindImage    AttachmentKind = "image"
	AttachmentKindVideo    AttachmentKind = "video"
	AttachmentKindDocument AttachmentKind = "document"
)

func (k AttachmentKind) String() string {
	return string(k)
}

// AttachmentKindFromMIME derives the kind from a content type string
func AttachmentKindFromMIME(contentType string) AttachmentKind {
	major, _, _ := strings.Cut(contentType, "/")
	switch strings.ToLower(strings.TrimSpace(major)) {
	case "image":
		return AttachmentKindImage
	case "video":
		return AttachmentKindVideo
	default:
		return AttachmentKindDocument
	}
}

// SniffAttachmentKind inspects the file header bytes when the declared
// content type is missing or generic. Falls back to Document.
func SniffAttachmentKind(data []byte, declared string) (AttachmentKind, string) {
	if declared != "" && declared != "application/octet-stream" {
		return AttachmentKindFromMIME(declared), declared
	}
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return AttachmentKindDocument, "application/octet-stream"
	}
	return AttachmentKindFromMIME(kind.MIME.Value), kind.MIME.Value
}
