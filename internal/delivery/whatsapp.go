package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	ierr "github.com/oficinago/oficinago/internal/errors"
	"github.com/oficinago/oficinago/internal/config"
	"github.com/oficinago/oficinago/internal/httpclient"
	"github.com/oficinago/oficinago/internal/logger"
	"github.com/oficinago/oficinago/internal/types"
)

const defaultAPIBaseURL = "https://graph.facebook.com/v19.0"

// shareableContentTypes are the media types the WhatsApp gateway accepts as
// file payloads
var shareableContentTypes = []string{"image/", "video/", "application/pdf"}

// WhatsAppGateway implements ShareGateway against the WhatsApp Cloud API:
// each file is uploaded to the media endpoint, then sent as a media message;
// the caption rides on the first file.
type WhatsAppGateway struct {
	cfg    config.WhatsAppConfig
	client httpclient.Client
	log    *logger.Logger
}

// NewShareGateway returns nil when no API token is configured: native share
// is then unsupported and the cascade starts at the download tier.
func NewShareGateway(cfg *config.Configuration, client httpclient.Client, log *logger.Logger) ShareGateway {
	if cfg.WhatsApp.APIToken == "" || cfg.WhatsApp.PhoneNumberID == "" {
		return nil
	}
	wa := cfg.WhatsApp
	if wa.APIBaseURL == "" {
		wa.APIBaseURL = defaultAPIBaseURL
	}
	return &WhatsAppGateway{cfg: wa, client: client, log: log}
}

func (g *WhatsAppGateway) CanShareFiles(_ context.Context, files []ShareFile) bool {
	if len(files) == 0 || len(files) > g.cfg.MaxShareFiles {
		return false
	}
	for _, f := range files {
		if len(f.Data) == 0 || !shareableType(f.ContentType) {
			return false
		}
	}
	return true
}

func shareableType(contentType string) bool {
	for _, prefix := range shareableContentTypes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

func (g *WhatsAppGateway) Share(ctx context.Context, phone string, files []ShareFile, title, text string) error {
	to := types.InternationalPhone(phone)

	for i, f := range files {
		mediaID, err := g.uploadMedia(ctx, f)
		if err != nil {
			return g.mapShareErr(err)
		}

		// Caption rides on the first file only
		caption := ""
		if i == 0 {
			caption = text
		}
		if err := g.sendMedia(ctx, to, f, mediaID, caption); err != nil {
			return g.mapShareErr(err)
		}
	}

	g.log.Infow("shared receipt via whatsapp", "to", to, "files", len(files), "title", title)
	return nil
}

// mapShareErr keeps the cancellation-vs-failure distinction: a caller-driven
// context cancel means the user aborted the share, which the cascade treats
// as a terminal outcome, not a failure. Payload rejections from the API mean
// this content cannot be shared natively, so the cascade falls through.
func (g *WhatsAppGateway) mapShareErr(err error) error {
	if stderrors.Is(err, context.Canceled) {
		return ierr.WithError(err).Mark(ierr.ErrShareCancelled)
	}
	if httpErr, ok := httpclient.IsHTTPError(err); ok {
		switch httpErr.StatusCode {
		case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
			return ierr.WithError(err).
				WithMessage(httpErr.APIMessage()).
				Mark(ierr.ErrShareUnsupported)
		}
	}
	return err
}

func (g *WhatsAppGateway) uploadMedia(ctx context.Context, f ShareFile) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", f.Name)
	if err != nil {
		return "", ierr.WithError(err).Mark(ierr.ErrHTTPClient)
	}
	if _, err := part.Write(f.Data); err != nil {
		return "", ierr.WithError(err).Mark(ierr.ErrHTTPClient)
	}
	_ = w.WriteField("type", f.ContentType)
	_ = w.WriteField("messaging_product", "whatsapp")
	if err := w.Close(); err != nil {
		return "", ierr.WithError(err).Mark(ierr.ErrHTTPClient)
	}

	resp, err := g.client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/%s/media", g.cfg.APIBaseURL, g.cfg.PhoneNumberID),
		Headers: map[string]string{
			"Authorization": "Bearer " + g.cfg.APIToken,
			"Content-Type":  w.FormDataContentType(),
		},
		Body: body.Bytes(),
	})
	if err != nil {
		return "", err
	}

	var mediaResp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body, &mediaResp); err != nil || mediaResp.ID == "" {
		return "", ierr.NewError("media upload returned no id").Mark(ierr.ErrHTTPClient)
	}
	return mediaResp.ID, nil
}

func (g *WhatsAppGateway) sendMedia(ctx context.Context, to string, f ShareFile, mediaID, caption string) error {
	mediaType := "document"
	switch {
	case strings.HasPrefix(f.ContentType, "image/"):
		mediaType = "image"
	case strings.HasPrefix(f.ContentType, "video/"):
		mediaType = "video"
	}

	media := map[string]any{"id": mediaID}
	if caption != "" {
		media["caption"] = caption
	}
	if mediaType == "document" {
		media["filename"] = f.Name
	}

	payload, err := json.Marshal(map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              mediaType,
		mediaType:           media,
	})
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	_, err = g.client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/%s/messages", g.cfg.APIBaseURL, g.cfg.PhoneNumberID),
		Headers: map[string]string{
			"Authorization": "Bearer " + g.cfg.APIToken,
			"Content-Type":  "application/json",
		},
		Body: payload,
	})
	return err
}
