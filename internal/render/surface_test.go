package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficinago/oficinago/internal/domain/service"
	"github.com/oficinago/oficinago/internal/types"
)

func TestHeadline(t *testing.T) {
	record := newTestRecord("150.50")
	assert.Equal(t, "R$ 150,50", Headline(record))

	record = newTestRecord("0")
	assert.Equal(t, HeadlineQuotePending, Headline(record))
}

func TestSurfaceRender(t *testing.T) {
	surface, err := NewSurface()
	require.NoError(t, err)

	record := newTestRecord("150.00")

	html, err := surface.Render(record, nil, Options{})
	require.NoError(t, err)

	assert.Contains(t, html, `id="receipt"`)
	assert.Contains(t, html, "R$ 150,00")
	assert.Contains(t, html, "João Silva")
	assert.Contains(t, html, "Trator")
	assert.Contains(t, html, "ABC-1234")
	assert.Contains(t, html, "Finalizado")
	assert.Contains(t, html, "Troca de óleo")
	assert.Contains(t, html, "15/03/2024")
	assert.NotContains(t, html, `class="receipt offscreen"`)
}

func TestSurfaceRender_Offscreen(t *testing.T) {
	surface, err := NewSurface()
	require.NoError(t, err)

	html, err := surface.Render(newTestRecord("0"), nil, Options{Offscreen: true})
	require.NoError(t, err)

	assert.Contains(t, html, `class="receipt offscreen"`)
	assert.Contains(t, html, HeadlineQuotePending)
}

func TestSurfaceRender_Attachments(t *testing.T) {
	surface, err := NewSurface()
	require.NoError(t, err)

	photo1 := &service.Attachment{
		ID: "att_1", Name: "frente.jpg",
		Kind: types.AttachmentKindImage, ContentType: "image/jpeg",
		RenderableRef: "data:image/jpeg;base64,Zm9v",
	}
	photo2 := &service.Attachment{
		ID: "att_2", Name: "lado.jpg",
		Kind: types.AttachmentKindImage, ContentType: "image/jpeg",
		RenderableRef: "data:image/jpeg;base64,YmFy",
	}
	video := &service.Attachment{
		ID: "att_3", Name: "motor.mp4",
		Kind: types.AttachmentKindVideo, ContentType: "video/mp4",
	}
	doc := &service.Attachment{
		ID: "att_4", Name: "orcamento.pdf",
		Kind: types.AttachmentKindDocument, ContentType: "application/pdf",
		RemoteRef: "https://blobs.test/oficina/orcamento.pdf",
	}

	html, err := surface.Render(newTestRecord("150.00"),
		[]*service.Attachment{photo1, photo2, video, doc}, Options{})
	require.NoError(t, err)

	// only the first image is embedded as pixel content
	assert.Contains(t, html, photo1.RenderableRef)
	assert.NotContains(t, html, photo2.RenderableRef)

	// video placeholders are flagged so the rasterizer skips them
	assert.Contains(t, html, "motor.mp4")
	assert.Contains(t, html, `data-raster-ignore="true"`)

	// documents become link cards
	assert.Contains(t, html, "orcamento.pdf")
	assert.Contains(t, html, doc.RemoteRef)
}

func TestSurfaceRender_ImageFallsBackToRemoteRef(t *testing.T) {
	surface, err := NewSurface()
	require.NoError(t, err)

	photo := &service.Attachment{
		ID: "att_1", Name: "frente.jpg",
		Kind: types.AttachmentKindImage, ContentType: "image/jpeg",
		RemoteRef: "https://blobs.test/oficina/frente.jpg",
	}

	html, err := surface.Render(newTestRecord("150.00"),
		[]*service.Attachment{photo}, Options{})
	require.NoError(t, err)

	assert.Contains(t, html, photo.RemoteRef)
}
