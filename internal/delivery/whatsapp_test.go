package delivery_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficinago/oficinago/internal/config"
	. "github.com/oficinago/oficinago/internal/delivery"
	ierr "github.com/oficinago/oficinago/internal/errors"
	"github.com/oficinago/oficinago/internal/logger"
	"github.com/oficinago/oficinago/internal/testutil"
	"github.com/oficinago/oficinago/internal/types"
)

func newTestGateway(t *testing.T, client *testutil.MockHTTPClient) ShareGateway {
	t.Helper()
	log, err := logger.NewLoggerWithLevel(types.LogLevelInfo)
	require.NoError(t, err)

	cfg := config.GetDefaultConfig()
	cfg.WhatsApp.APIToken = "test-token"
	cfg.WhatsApp.PhoneNumberID = "1234567890"
	cfg.WhatsApp.APIBaseURL = "https://graph.test/v19.0"
	return NewShareGateway(cfg, client, log)
}

func TestNewShareGateway_NilWithoutCredentials(t *testing.T) {
	cfg := config.GetDefaultConfig()
	log, err := logger.NewLoggerWithLevel(types.LogLevelInfo)
	require.NoError(t, err)

	assert.Nil(t, NewShareGateway(cfg, testutil.NewMockHTTPClient(), log))
}

func TestCanShareFiles(t *testing.T) {
	g := newTestGateway(t, testutil.NewMockHTTPClient())
	png := ShareFile{Name: "r.png", ContentType: "image/png", Data: []byte("img")}
	pdf := ShareFile{Name: "o.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}
	exe := ShareFile{Name: "x.exe", ContentType: "application/octet-stream", Data: []byte{1}}
	empty := ShareFile{Name: "e.png", ContentType: "image/png"}

	ctx := context.Background()
	assert.True(t, g.CanShareFiles(ctx, []ShareFile{png}))
	assert.True(t, g.CanShareFiles(ctx, []ShareFile{png, pdf}))
	assert.False(t, g.CanShareFiles(ctx, nil))
	assert.False(t, g.CanShareFiles(ctx, []ShareFile{exe}))
	assert.False(t, g.CanShareFiles(ctx, []ShareFile{empty}))

	// the per-message file cap gates the multi-file tier
	many := make([]ShareFile, config.GetDefaultConfig().WhatsApp.MaxShareFiles+1)
	for i := range many {
		many[i] = png
	}
	assert.False(t, g.CanShareFiles(ctx, many))
}

func TestShare_UploadsThenSends(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	client.RegisterResponse("/media", testutil.MockResponse{Body: []byte(`{"id":"media-1"}`)})
	client.RegisterResponse("/messages", testutil.MockResponse{Body: []byte(`{"messages":[{"id":"wamid.1"}]}`)})
	g := newTestGateway(t, client)

	files := []ShareFile{
		{Name: "r.png", ContentType: "image/png", Data: []byte("img")},
		{Name: "o.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	}
	err := g.Share(context.Background(), "11999999999", files, "Status do Serviço", "caption text")
	require.NoError(t, err)

	reqs := client.Requests()
	require.Len(t, reqs, 4, "one upload and one send per file")

	var first map[string]any
	require.NoError(t, json.Unmarshal(reqs[1].Body, &first))
	assert.Equal(t, "5511999999999", first["to"])
	assert.Equal(t, "image", first["type"])
	image := first["image"].(map[string]any)
	assert.Equal(t, "media-1", image["id"])
	assert.Equal(t, "caption text", image["caption"], "caption rides on the first file")

	var second map[string]any
	require.NoError(t, json.Unmarshal(reqs[3].Body, &second))
	assert.Equal(t, "document", second["type"])
	doc := second["document"].(map[string]any)
	assert.Equal(t, "o.pdf", doc["filename"])
	_, hasCaption := doc["caption"]
	assert.False(t, hasCaption)
}

func TestShare_ContextCancelMapsToCancelled(t *testing.T) {
	client := testutil.NewMockHTTPClient()
	g := newTestGateway(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Share(ctx, "11999999999",
		[]ShareFile{{Name: "r.png", ContentType: "image/png", Data: []byte("img")}},
		"Status do Serviço", "caption")
	require.Error(t, err)
	assert.True(t, ierr.IsShareCancelled(err))
}
