// Package render binds a service record to the visual receipt document and
// to its caption text. Rendering is a pure function of the record and its
// attachments; the rasterizer captures the resulting document's pixels.
package render

import (
	"bytes"
	"embed"
	"html/template"

	ierr "github.com/oficinago/oficinago/internal/errors"
	"github.com/oficinago/oficinago/internal/domain/service"
	"github.com/oficinago/oficinago/internal/types"
)

//go:embed templates/receipt.html.tmpl
var templateFS embed.FS

// HeadlineQuotePending is shown on the receipt when the price is the
// "quote pending" sentinel
const HeadlineQuotePending = "Avaliação"

// Options controls how the surface is mounted. Offscreen positions the
// document outside the viewport while keeping it fully laid out, so an
// uncomposited intermediate state is never visible.
type Options struct {
	Offscreen bool
}

// Surface renders the receipt document for a record
type Surface struct {
	tmpl *template.Template
}

func NewSurface() (*Surface, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/receipt.html.tmpl")
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to parse receipt template").
			Mark(ierr.ErrSystem)
	}
	return &Surface{tmpl: tmpl}, nil
}

type photoView struct {
	Src  template.URL
	Name string
}

type documentView struct {
	Name string
	Href template.URL
}

type receiptView struct {
	Offscreen      bool
	Headline       string
	Status         string
	Client         string
	Equipment      string
	Plate          string
	Description    string
	Date           string
	HasAttachments bool
	Photo          *photoView
	Videos         []string
	Documents      []documentView
}

// Render produces the receipt HTML for a record. Only the first image
// attachment is embedded as pixel content; videos become placeholders flagged
// for the rasterizer to skip, documents become name+link cards.
func (s *Surface) Render(record *service.Record, attachments []*service.Attachment, opts Options) (string, error) {
	view := receiptView{
		Offscreen:   opts.Offscreen,
		Headline:    Headline(record),
		Status:      record.ServiceStatus.String(),
		Client:      record.Client,
		Equipment:   record.Equipment,
		Plate:       record.Plate,
		Description: record.Description,
		Date:        types.FormatDateBR(record.RecordedAt),
	}

	if img := service.FirstImage(attachments); img != nil {
		src := img.RenderableRef
		if src == "" {
			src = img.RemoteRef
		}
		if src != "" {
			view.Photo = &photoView{Src: template.URL(src), Name: img.Name}
		}
	}
	for _, att := range attachments {
		switch att.Kind {
		case types.AttachmentKindVideo:
			view.Videos = append(view.Videos, att.Name)
		case types.AttachmentKindDocument:
			href := att.RemoteRef
			if href == "" {
				href = "#"
			}
			view.Documents = append(view.Documents, documentView{
				Name: att.Name,
				Href: template.URL(href),
			})
		}
	}
	view.HasAttachments = view.Photo != nil || len(view.Videos) > 0 || len(view.Documents) > 0

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, view); err != nil {
		return "", ierr.WithError(err).
			WithMessage("failed to render receipt").
			Mark(ierr.ErrSystem)
	}
	return buf.String(), nil
}

// Headline returns the ribbon headline: the formatted price, or the quote
// pending label when the price is the sentinel. Display-level branch kept
// exactly for visual parity with the caption's status-only line.
func Headline(record *service.Record) string {
	if types.IsSentinelPrice(record.Price) {
		return HeadlineQuotePending
	}
	return types.FormatBRL(record.Price)
}
