package delivery

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/oficinago/oficinago/internal/config"
	"github.com/oficinago/oficinago/internal/domain/receipt"
	"github.com/oficinago/oficinago/internal/domain/service"
	ierr "github.com/oficinago/oficinago/internal/errors"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Outbox is the download tier's target: the receipt PNG is saved here and the
// user is expected to attach it manually in the chat the deep link opens.
type Outbox struct {
	dir string
}

func NewOutbox(cfg *config.Configuration) *Outbox {
	return &Outbox{dir: cfg.Outbox.Dir}
}

// Save writes the artifact binary under the original TERMEP_<client>.png
// naming and returns the written path
func (o *Outbox) Save(record *service.Record, artifact *receipt.RenderArtifact) (string, error) {
	if !artifact.Valid() {
		return "", ierr.NewError("artifact has no binary payload").
			Mark(ierr.ErrInvalidOperation)
	}

	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return "", ierr.WithError(err).
			WithMessagef("outbox dir: %s", o.dir).
			Mark(ierr.ErrSystem)
	}

	name := fmt.Sprintf("TERMEP_%s.png", whitespaceRegex.ReplaceAllString(record.Client, ""))
	path := filepath.Join(o.dir, name)
	if err := os.WriteFile(path, artifact.Binary, 0o644); err != nil {
		return "", ierr.WithError(err).
			WithMessagef("outbox path: %s", path).
			Mark(ierr.ErrSystem)
	}
	return path, nil
}
