package render

import (
	"strings"

	"github.com/oficinago/oficinago/internal/domain/service"
	"github.com/oficinago/oficinago/internal/types"
)

// CaptionStatusHeadline replaces the price line in the caption when the
// price is the "quote pending" sentinel
const CaptionStatusHeadline = "Status do Serviço"

// BuildCaption assembles the WhatsApp message text for a record. The layout
// is fixed: title, price-or-status headline, subtitle, labeled blocks for
// client, equipment, status (with the generation date) and the work done,
// plus a trailing photo URL list when remote uploads succeeded.
func BuildCaption(record *service.Record, photoURLs []string) string {
	var b strings.Builder

	b.WriteString("*Informativo TERMEP*\n")
	if types.IsSentinelPrice(record.Price) {
		b.WriteString("*" + CaptionStatusHeadline + "*\n")
	} else {
		b.WriteString("*" + types.FormatBRL(record.Price) + "*\n")
	}
	b.WriteString("_Acompanhamento do seu equipamento_\n\n")

	b.WriteString("👤 *Cliente*\n" + record.Client + "\n\n")
	b.WriteString("🚜 *Equipamento*\n" + record.Equipment + " - " + record.Plate + "\n\n")
	b.WriteString("📊 *Status Atual*\n" + record.ServiceStatus.String() + "\n_" + types.FormatDateBR(record.RecordedAt) + "_\n\n")
	b.WriteString("🔧 *Serviço Realizado*\n" + record.Description + "\n")

	if len(photoURLs) > 0 {
		b.WriteString("\n📸 *Fotos do Serviço*\n" + strings.Join(photoURLs, "\n"))
	}

	return b.String()
}
