package urlkey

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Ukrainian transliteration follows the store's established URL scheme
// (the KMU 2010 romanization), so keys generated here match keys the
// storefront already uses.
var ukrainianTranslit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "h", 'ґ': "g",
	'д': "d", 'е': "e", 'є': "ye", 'ж': "zh", 'з': "z",
	'и': "y", 'і': "i", 'ї': "yi", 'й': "y", 'к': "k",
	'л': "l", 'м': "m", 'н': "n", 'о': "o", 'п': "p",
	'р': "r", 'с': "s", 'т': "t", 'у': "u", 'ф': "f",
	'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ь': "", 'ю': "yu", 'я': "ya",
}

// foldDiacritics decomposes accented Latin characters and strips the
// combining marks, so "café" folds to "cafe".
var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Generate derives a URL key from a product or category name:
// transliterated, diacritic-folded, lowercased, with runs of spaces and
// hyphens collapsed to single hyphens. Unmappable characters are
// dropped. An empty or fully unmappable name yields "".
func Generate(name string) string {
	if name == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		lower := unicode.ToLower(r)
		if mapped, ok := ukrainianTranslit[lower]; ok {
			sb.WriteString(mapped)
			continue
		}
		sb.WriteRune(lower)
	}

	folded, _, err := transform.String(foldDiacritics, sb.String())
	if err != nil {
		folded = sb.String()
	}

	var out strings.Builder
	out.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingHyphen && out.Len() > 0 {
				out.WriteByte('-')
			}
			pendingHyphen = false
			out.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}
	return out.String()
}
