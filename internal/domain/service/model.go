package service

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/oficinago/oficinago/internal/types"
)

// Record represents one service-status update for a client's equipment. It is
// the subject of the whole receipt pipeline: persisted as a document, bound to
// the render surface, and summarized in the caption text.
type Record struct {
	// Unique identifier for this service record
	ID string `json:"id" dynamodbav:"sk"`
	// The client name as shown on the receipt
	Client string `json:"client" dynamodbav:"client"`
	// The phone holds digits only (10-11), validated at the boundary; the
	// country prefix is added only when building deep links
	Phone string `json:"phone" dynamodbav:"phone"`
	// The equipment under service, e.g. "Trator John Deere"
	Equipment string `json:"equipment" dynamodbav:"equipment"`
	// The plate or other identification of the equipment
	Plate string `json:"plate" dynamodbav:"plate"`
	// The current progress status using the workshop labels
	ServiceStatus types.ServiceStatus `json:"service_status" dynamodbav:"service_status"`
	// Free-form description of the work done
	Description string `json:"description" dynamodbav:"description"`
	// The price of the service; zero is the "quote pending" sentinel and is
	// rendered as a status-only headline instead of a currency value
	Price decimal.Decimal `json:"price" dynamodbav:"price"`
	// When the update was recorded; shown on the receipt footer
	RecordedAt time.Time `json:"recorded_at" dynamodbav:"recorded_at"`
	// The attachments supplied with this update
	Attachments []*Attachment `json:"attachments,omitempty" dynamodbav:"attachments,omitempty"`

	types.BaseModel
}

// Attachment is one user-supplied file tied to a record. Its three references
// degrade independently: TransientRef always exists for the session,
// RemoteRef only when the blob upload succeeded, RenderableRef only after the
// normalizer inlined the bytes for capture.
type Attachment struct {
	ID string `json:"id" dynamodbav:"id"`
	// Original filename as uploaded
	Name string `json:"name" dynamodbav:"name"`
	// Kind derived from the MIME major type; Document is the catch-all
	Kind types.AttachmentKind `json:"kind" dynamodbav:"kind"`
	// Content type as declared or sniffed
	ContentType string `json:"content_type" dynamodbav:"content_type"`
	// TransientRef points at in-process bytes, valid only for this session.
	// Never persisted.
	TransientRef *TransientRef `json:"-" dynamodbav:"-"`
	// RemoteRef is the public blob-store URL; empty when the upload failed or
	// the blob store is disabled, which is an expected and tolerated state
	RemoteRef string `json:"remote_ref,omitempty" dynamodbav:"remote_ref,omitempty"`
	// RenderableRef is a self-contained data URI derived once by the
	// normalizer, image kind only. Never persisted; rebuilt per session.
	RenderableRef string `json:"-" dynamodbav:"-"`
}

// TransientRef holds the raw uploaded bytes for the lifetime of the session
type TransientRef struct {
	Data []byte
}

// SourceRef returns the reference the normalizer should fetch or inline:
// remote URL when the upload succeeded, otherwise the in-memory bytes.
func (a *Attachment) SourceRef() (url string, data []byte) {
	if a.TransientRef != nil && len(a.TransientRef.Data) > 0 {
		return "", a.TransientRef.Data
	}
	return a.RemoteRef, nil
}

// HasRenderableRef reports whether the normalizer already produced an
// inlined form for this attachment
func (a *Attachment) HasRenderableRef() bool {
	return a.RenderableRef != ""
}

// NewRecord constructs a record with generated id and defaults
func NewRecord() *Record {
	return &Record{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SERVICE_RECORD),
		RecordedAt: time.Now().UTC(),
		BaseModel:  types.GetDefaultBaseModel(),
	}
}

// NewAttachment constructs an attachment from raw uploaded bytes
func NewAttachment(name, contentType string, data []byte) *Attachment {
	kind, sniffed := types.SniffAttachmentKind(data, contentType)
	return &Attachment{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ATTACHMENT),
		Name:         name,
		Kind:         kind,
		ContentType:  sniffed,
		TransientRef: &TransientRef{Data: data},
	}
}

// FirstImage returns the first image-kind attachment, which is the only one
// embedded as pixel content in the capture surface
func FirstImage(attachments []*Attachment) *Attachment {
	img, ok := lo.Find(attachments, func(a *Attachment) bool {
		return a.Kind == types.AttachmentKindImage
	})
	if !ok {
		return nil
	}
	return img
}

// RemotePhotoURLs collects the remote URLs of image attachments whose upload
// succeeded, in input order. These are listed in the caption text.
func RemotePhotoURLs(attachments []*Attachment) []string {
	return lo.FilterMap(attachments, func(a *Attachment, _ int) (string, bool) {
		return a.RemoteRef, a.Kind == types.AttachmentKindImage && a.RemoteRef != ""
	})
}
