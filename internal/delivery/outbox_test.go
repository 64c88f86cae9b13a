package delivery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficinago/oficinago/internal/config"
	"github.com/oficinago/oficinago/internal/domain/receipt"
)

func TestOutboxSave(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Outbox.Dir = filepath.Join(t.TempDir(), "nested", "outbox")
	outbox := NewOutbox(cfg)

	record := testRecord()
	path, err := outbox.Save(record, testArtifact())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cfg.Outbox.Dir, "TERMEP_JoãoSilva.png"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)
}

func TestOutboxSave_RejectsInvalidArtifact(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Outbox.Dir = t.TempDir()
	outbox := NewOutbox(cfg)

	_, err := outbox.Save(testRecord(), &receipt.RenderArtifact{})
	assert.Error(t, err)
}
