package delivery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oficinago/oficinago/internal/types"
)

// BuildDeepLink produces the messaging deep link that opens a chat with the
// client's number prefilled with the caption text. The country prefix is
// prepended when the stripped number does not already carry it.
func BuildDeepLink(host, phone, caption string) string {
	// percent-encode spaces; some chat clients render "+" literally
	text := strings.ReplaceAll(url.QueryEscape(caption), "+", "%20")
	return fmt.Sprintf("https://%s/%s?text=%s",
		host,
		types.InternationalPhone(phone),
		text,
	)
}
