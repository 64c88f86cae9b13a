// Package service orchestrates the receipt pipeline across a single
// user-triggered action: persist the record, normalize media, render and
// capture the receipt, then run the delivery cascade.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/oficinago/oficinago/internal/api/dto"
	"github.com/oficinago/oficinago/internal/blob"
	"github.com/oficinago/oficinago/internal/delivery"
	"github.com/oficinago/oficinago/internal/domain/receipt"
	domainservice "github.com/oficinago/oficinago/internal/domain/service"
	ierr "github.com/oficinago/oficinago/internal/errors"
	"github.com/oficinago/oficinago/internal/logger"
	"github.com/oficinago/oficinago/internal/media"
	"github.com/oficinago/oficinago/internal/raster"
	"github.com/oficinago/oficinago/internal/render"
)

// InformService is the application-facing API of the pipeline
type InformService interface {
	CreateRecord(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceRecordResponse, error)
	GetRecord(ctx context.Context, id string) (*dto.ServiceRecordResponse, error)
	ListRecords(ctx context.Context, limit int) (*dto.ListServicesResponse, error)
	ShareReceipt(ctx context.Context, id string) (*dto.DeliveryResponse, error)
	DownloadReceipt(ctx context.Context, id string) (*dto.DeliveryResponse, error)
	RenderReceiptPNG(ctx context.Context, id string) ([]byte, error)
	Status() dto.InteractionStatusResponse
}

type informService struct {
	repo        domainservice.Repository
	blobs       blob.Store
	normalizer  *media.Normalizer
	surface     *render.Surface
	capturer    raster.Capturer
	cascade     *delivery.Cascade
	interaction *Interaction
	log         *logger.Logger
}

func NewInformService(
	repo domainservice.Repository,
	blobs blob.Store,
	normalizer *media.Normalizer,
	surface *render.Surface,
	capturer raster.Capturer,
	cascade *delivery.Cascade,
	log *logger.Logger,
) InformService {
	return &informService{
		repo:        repo,
		blobs:       blobs,
		normalizer:  normalizer,
		surface:     surface,
		capturer:    capturer,
		cascade:     cascade,
		interaction: NewInteraction(),
		log:         log,
	}
}

// CreateRecord validates the form input, uploads attachments best-effort and
// persists the document. Upload failures degrade to transient-only
// attachments; a persistence failure aborts and is surfaced, because the
// record itself may be lost.
func (s *informService) CreateRecord(ctx context.Context, req dto.CreateServiceRequest) (*dto.ServiceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.interaction.Begin(ActionSubmit); err != nil {
		return nil, err
	}
	defer s.interaction.End()

	record, err := req.ToRecord()
	if err != nil {
		return nil, err
	}

	s.uploadAttachments(ctx, record)

	s.interaction.SetStatus("Registrando serviço...")
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Erro ao salvar. Baixe a imagem e envie manualmente.").
			Mark(ierr.ErrDatabase)
	}

	s.log.Infow("service record created",
		"record_id", record.ID,
		"client", record.Client,
		"attachments", len(record.Attachments),
	)
	return dto.NewServiceRecordResponse(record, render.Headline(record)), nil
}

// uploadAttachments pushes each attachment to the blob store and resolves its
// public URL. Every failure is tolerated: the attachment simply stays
// transient-only for this session.
func (s *informService) uploadAttachments(ctx context.Context, record *domainservice.Record) {
	if s.blobs == nil || len(record.Attachments) == 0 {
		return
	}

	for i, att := range record.Attachments {
		s.interaction.SetStatus(fmt.Sprintf("Enviando anexo %d de %d...", i+1, len(record.Attachments)))

		key := blob.AttachmentKey(att.Name, time.Now())
		if err := s.blobs.Upload(ctx, key, att.TransientRef.Data, att.ContentType); err != nil {
			s.log.Warnw("attachment upload failed, keeping transient-only",
				"record_id", record.ID, "attachment", att.Name, "error", err)
			continue
		}
		url, err := s.blobs.PublicURL(ctx, key)
		if err != nil {
			s.log.Warnw("attachment url resolution failed, keeping transient-only",
				"record_id", record.ID, "attachment", att.Name, "error", err)
			continue
		}
		att.RemoteRef = url
	}
}

func (s *informService) GetRecord(ctx context.Context, id string) (*dto.ServiceRecordResponse, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewServiceRecordResponse(record, render.Headline(record)), nil
}

// ListRecords returns the most recent records first, for the history view
func (s *informService) ListRecords(ctx context.Context, limit int) (*dto.ListServicesResponse, error) {
	records, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := lo.Map(records, func(record *domainservice.Record, _ int) *dto.ServiceRecordResponse {
		return dto.NewServiceRecordResponse(record, render.Headline(record))
	})
	return &dto.ListServicesResponse{Items: items, Total: len(items)}, nil
}

// ShareReceipt runs the full pipeline for one record. Rasterization failure
// is not fatal to delivery: the cascade degrades to the text-only tier.
func (s *informService) ShareReceipt(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	if err := s.interaction.Begin(ActionShare); err != nil {
		return nil, err
	}
	defer s.interaction.End()

	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	artifact := s.capture(ctx, record)

	s.interaction.SetStatus("Compartilhando...")
	result := s.cascade.Deliver(ctx, artifact, record, record.Attachments)
	s.interaction.SetStatus("Concluído")

	s.log.Infow("delivery finished", "record_id", record.ID, "outcome", result.Outcome)
	return &dto.DeliveryResponse{Delivery: result}, nil
}

// DownloadReceipt skips the native tiers: outbox save plus deep link, or the
// text-only link if capture failed.
func (s *informService) DownloadReceipt(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	if err := s.interaction.Begin(ActionDownload); err != nil {
		return nil, err
	}
	defer s.interaction.End()

	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	artifact := s.capture(ctx, record)

	s.interaction.SetStatus("Salvando...")
	result := s.cascade.Download(ctx, artifact, record)
	s.interaction.SetStatus("Concluído")

	return &dto.DeliveryResponse{Delivery: result}, nil
}

// RenderReceiptPNG captures the receipt and returns the raw PNG
func (s *informService) RenderReceiptPNG(ctx context.Context, id string) ([]byte, error) {
	if err := s.interaction.Begin(ActionRender); err != nil {
		return nil, err
	}
	defer s.interaction.End()

	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.interaction.SetStatus("Gerando informativo...")
	s.normalizer.Normalize(ctx, record.Attachments)

	html, err := s.surface.Render(record, record.Attachments, render.Options{Offscreen: true})
	if err != nil {
		return nil, err
	}
	artifact, err := s.capturer.Capture(ctx, html)
	if err != nil {
		return nil, err
	}
	return artifact.Binary, nil
}

// capture runs normalize, render and rasterize; a nil return routes the
// cascade to the text-only tier. Normalization completes before the capture
// is attempted, so the first capture already sees inlined images.
func (s *informService) capture(ctx context.Context, record *domainservice.Record) *receipt.RenderArtifact {
	s.interaction.SetStatus("Gerando informativo...")

	s.normalizer.Normalize(ctx, record.Attachments)

	html, err := s.surface.Render(record, record.Attachments, render.Options{Offscreen: true})
	if err != nil {
		s.log.Errorw("receipt render failed", "record_id", record.ID, "error", err)
		return nil
	}

	artifact, err := s.capturer.Capture(ctx, html)
	if err != nil {
		s.log.Errorw("rasterization failed, delivery will be text-only",
			"record_id", record.ID, "error", err)
		return nil
	}
	return artifact
}

func (s *informService) Status() dto.InteractionStatusResponse {
	busy, action, text := s.interaction.Snapshot()
	return dto.InteractionStatusResponse{
		Busy:       busy,
		Action:     string(action),
		StatusText: text,
	}
}
