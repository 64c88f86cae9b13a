package types

import "time"

const (
	// pt-BR date layouts used on the receipt and in the caption
	DateLayoutBR      = "02/01/2006"
	DateLayoutBRShort = "02/01/06"
)

// FormatDateBR renders a timestamp as dd/mm/yyyy
func FormatDateBR(t time.Time) string {
	return t.Format(DateLayoutBR)
}

// FormatDateBRShort renders a timestamp as dd/mm/yy
func FormatDateBRShort(t time.Time) string {
	return t.Format(DateLayoutBRShort)
}
