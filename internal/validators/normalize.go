package validators

import "strings"

var diacritics = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

// NormalizeName lower-cases and strips common diacritics so that
// service search matches regardless of accents.
func NormalizeName(s string) string {
	return diacritics.Replace(strings.ToLower(strings.TrimSpace(s)))
}
