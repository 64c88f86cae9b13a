package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sourcegraph/conc/pool"

	"github.com/oficinago/oficinago/internal/config"
	"github.com/oficinago/oficinago/internal/domain/service"
	"github.com/oficinago/oficinago/internal/logger"
	"github.com/oficinago/oficinago/internal/types"
)

const (
	// Renderable refs are session-scoped; the cache only has to survive
	// surface re-mounts within one interaction, not restarts.
	cacheTTL        = 15 * time.Minute
	maxParallel     = 4
	maxFetchRetries = 2
)

// Normalizer converts image attachments into self-contained data URIs so a
// capture cannot be broken by cross-origin or transient references. It is
// idempotent: attachments that already carry a renderable ref are untouched,
// and fetched bytes are memoized per attachment so a surface re-mount is a
// no-op.
type Normalizer struct {
	client  *retryablehttp.Client
	cache   *gocache.Cache
	timeout time.Duration
	log     *logger.Logger
}

func NewNormalizer(cfg *config.Configuration, log *logger.Logger) *Normalizer {
	client := retryablehttp.NewClient()
	client.RetryMax = maxFetchRetries
	client.HTTPClient.Timeout = cfg.Media.FetchTimeout
	client.Logger = nil

	return &Normalizer{
		client:  client,
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
		timeout: cfg.Media.FetchTimeout,
		log:     log,
	}
}

// Normalize populates the renderable ref of every image attachment. It never
// fails the pipeline: on fetch error or timeout the attachment falls back to
// its original reference and the capture may simply miss that image.
// Non-image attachments pass through unmodified.
func (n *Normalizer) Normalize(ctx context.Context, attachments []*service.Attachment) {
	p := pool.New().WithMaxGoroutines(maxParallel)
	for _, att := range attachments {
		att := att
		if att.Kind != types.AttachmentKindImage || att.HasRenderableRef() {
			continue
		}
		p.Go(func() {
			n.normalizeOne(ctx, att)
		})
	}
	p.Wait()
}

func (n *Normalizer) normalizeOne(ctx context.Context, att *service.Attachment) {
	if cached, ok := n.cache.Get(att.ID); ok {
		att.RenderableRef = cached.(string)
		return
	}

	url, data := att.SourceRef()
	if data == nil && url != "" {
		fetched, err := n.fetch(ctx, url)
		if err != nil {
			n.log.Warnw("image normalization failed, falling back to raw reference",
				"attachment_id", att.ID, "error", err)
			att.RenderableRef = url
			return
		}
		data = fetched
	}
	if len(data) == 0 {
		n.log.Warnw("image attachment has no usable source", "attachment_id", att.ID)
		return
	}

	att.RenderableRef = DataURI(att.ContentType, data)
	n.cache.Set(att.ID, att.RenderableRef, gocache.DefaultExpiration)
}

func (n *Normalizer) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// DataURI encodes bytes as a self-contained data URI
func DataURI(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}
