package table

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DisplayName cleans a column name for human display:
// "order_date" → "Order Date", "unitPrice" → "Unit Price".
func DisplayName(col string) string {
	if strings.Contains(col, " ") {
		return strings.TrimSpace(col)
	}

	// Split camelCase before replacing separators.
	var b strings.Builder
	for i, r := range col {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(col[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}

	s := b.String()
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
