package render

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/oficinago/oficinago/internal/domain/service"
	"github.com/oficinago/oficinago/internal/types"
)

func newTestRecord(price string) *service.Record {
	return &service.Record{
		ID:            "svc_test",
		Client:        "João Silva",
		Phone:         "11999999999",
		Equipment:     "Trator",
		Plate:         "ABC-1234",
		ServiceStatus: types.ServiceStatusDone,
		Description:   "Troca de óleo",
		Price:         decimal.RequireFromString(price),
		RecordedAt:    time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildCaption_WithPrice(t *testing.T) {
	record := newTestRecord("150.00")

	caption := BuildCaption(record, nil)

	assert.Contains(t, caption, "*Informativo TERMEP*")
	assert.Contains(t, caption, "*R$ 150,00*")
	assert.NotContains(t, caption, CaptionStatusHeadline)
	assert.Contains(t, caption, "_Acompanhamento do seu equipamento_")
	assert.Contains(t, caption, "👤 *Cliente*\nJoão Silva")
	assert.Contains(t, caption, "🚜 *Equipamento*\nTrator - ABC-1234")
	assert.Contains(t, caption, "📊 *Status Atual*\nFinalizado\n_15/03/2024_")
	assert.Contains(t, caption, "🔧 *Serviço Realizado*\nTroca de óleo")
	assert.NotContains(t, caption, "📸")
}

func TestBuildCaption_SentinelPrice(t *testing.T) {
	record := newTestRecord("0.00")

	caption := BuildCaption(record, nil)

	// a zero price means "quote pending": the headline line shows the
	// status label instead of a currency value
	assert.Contains(t, caption, "*Status do Serviço*")
	assert.NotContains(t, caption, "R$")
}

func TestBuildCaption_PhotoURLs(t *testing.T) {
	record := newTestRecord("150.00")
	urls := []string{
		"https://blobs.test/oficina/1_a.jpg",
		"https://blobs.test/oficina/2_b.jpg",
	}

	caption := BuildCaption(record, urls)

	assert.Contains(t, caption, "📸 *Fotos do Serviço*")
	assert.Contains(t, caption, urls[0]+"\n"+urls[1])
}
