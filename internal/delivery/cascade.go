package delivery

import (
	"context"

	"github.com/oficinago/oficinago/internal/config"
	"github.com/oficinago/oficinago/internal/domain/receipt"
	"github.com/oficinago/oficinago/internal/domain/service"
	ierr "github.com/oficinago/oficinago/internal/errors"
	"github.com/oficinago/oficinago/internal/logger"
	"github.com/oficinago/oficinago/internal/render"
	"github.com/oficinago/oficinago/internal/types"
)

const receiptFilename = "status_servico.png"

// Cascade attempts delivery channels in fixed priority order, each tier only
// when its predecessor is unavailable or inapplicable: native multi-file
// share, native single-file share, outbox save plus deep link, and finally a
// text-only deep link when there is no artifact at all.
type Cascade struct {
	gateway ShareGateway
	outbox  *Outbox
	host    string
	log     *logger.Logger
}

// NewCascade accepts a nil gateway, which disables the native tiers entirely
func NewCascade(cfg *config.Configuration, gateway ShareGateway, outbox *Outbox, log *logger.Logger) *Cascade {
	return &Cascade{
		gateway: gateway,
		outbox:  outbox,
		host:    cfg.WhatsApp.DeepLinkHost,
		log:     log,
	}
}

// Deliver runs the cascade. A nil or invalid artifact means capture failed
// upstream and only the text-only tier applies. Extra non-image attachments
// (documents, videos) ride along on the native multi-file tier only.
func (c *Cascade) Deliver(ctx context.Context, artifact *receipt.RenderArtifact, record *service.Record, extras []*service.Attachment) *receipt.Delivery {
	caption := render.BuildCaption(record, service.RemotePhotoURLs(record.Attachments))

	if artifact == nil || !artifact.Valid() {
		return c.textOnly(record, caption)
	}

	files := []ShareFile{{
		Name:        receiptFilename,
		ContentType: "image/png",
		Data:        artifact.Binary,
	}}
	for _, att := range extras {
		if att.Kind == types.AttachmentKindImage {
			continue
		}
		if att.TransientRef == nil || len(att.TransientRef.Data) == 0 {
			continue
		}
		files = append(files, ShareFile{
			Name:        att.Name,
			ContentType: att.ContentType,
			Data:        att.TransientRef.Data,
		})
	}

	// Tier 1: native multi-file share
	if c.gateway != nil && c.gateway.CanShareFiles(ctx, files) {
		if outcome := c.tryShare(ctx, record, files, caption); outcome != nil {
			return outcome
		}
	} else if c.gateway != nil && len(files) > 1 {
		// Tier 2: multi-file unsupported, retry with the artifact alone
		single := files[:1]
		if c.gateway.CanShareFiles(ctx, single) {
			if outcome := c.tryShare(ctx, record, single, caption); outcome != nil {
				return outcome
			}
		}
	}

	// Tier 3: save to outbox, hand the user a prefilled deep link
	path, err := c.outbox.Save(record, artifact)
	if err != nil {
		c.log.Errorw("outbox save failed, degrading to text-only deep link",
			"record_id", record.ID, "error", err)
		return c.textOnly(record, caption)
	}
	return &receipt.Delivery{
		Outcome:   receipt.OutcomeDownloadedAndDeepLinked,
		SavedPath: path,
		DeepLink:  BuildDeepLink(c.host, record.Phone, caption),
	}
}

// tryShare returns a terminal delivery for success or cancellation, nil when
// the cascade should fall through to the next tier
func (c *Cascade) tryShare(ctx context.Context, record *service.Record, files []ShareFile, caption string) *receipt.Delivery {
	err := c.gateway.Share(ctx, record.Phone, files, "Status do Serviço", caption)
	if err == nil {
		return &receipt.Delivery{Outcome: receipt.OutcomeNativeShareSucceeded}
	}
	if ierr.IsShareCancelled(err) {
		// The user chose not to share; no download, no deep link
		return &receipt.Delivery{Outcome: receipt.OutcomeNativeShareCancelled}
	}
	if ierr.IsShareUnsupported(err) {
		return nil
	}
	c.log.Warnw("native share failed, falling back",
		"record_id", record.ID, "error", err)
	return nil
}

// Download skips the native tiers entirely: outbox save plus deep link, or
// the text-only link when there is no usable artifact
func (c *Cascade) Download(_ context.Context, artifact *receipt.RenderArtifact, record *service.Record) *receipt.Delivery {
	caption := render.BuildCaption(record, service.RemotePhotoURLs(record.Attachments))

	if artifact == nil || !artifact.Valid() {
		return c.textOnly(record, caption)
	}

	path, err := c.outbox.Save(record, artifact)
	if err != nil {
		c.log.Errorw("outbox save failed, degrading to text-only deep link",
			"record_id", record.ID, "error", err)
		return c.textOnly(record, caption)
	}
	return &receipt.Delivery{
		Outcome:   receipt.OutcomeDownloadedAndDeepLinked,
		SavedPath: path,
		DeepLink:  BuildDeepLink(c.host, record.Phone, caption),
	}
}

func (c *Cascade) textOnly(record *service.Record, caption string) *receipt.Delivery {
	// Datastore records predate validation changes, so the phone may be
	// unusable here even though new submissions are rejected upstream. No
	// phone means no deep link, and the text-only tier has nothing left.
	if types.StripPhone(record.Phone) == "" {
		return &receipt.Delivery{
			Outcome: receipt.OutcomeFailed,
			Reason:  "registro sem telefone válido para gerar o link do WhatsApp",
		}
	}
	return &receipt.Delivery{
		Outcome:  receipt.OutcomeTextOnlyDeepLinked,
		DeepLink: BuildDeepLink(c.host, record.Phone, caption),
	}
}
