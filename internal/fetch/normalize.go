// Package fetch drives the search-then-download loop shared by the two CLI
// modes: label normalization, filename derivation, label-file parsing, and
// the per-item runner with its success/miss/error accounting.
package fetch

import "strings"

// queryFixes rewrites known-bad label fragments into terms the icon search
// actually matches. Rules apply in order by substring containment, each
// seeing the output of the previous one; they are not whole-word matches.
var queryFixes = []struct{ from, to string }{
	{"e.guitar", "electric guitar"},
	{"e.piano", "electric piano"},
	{"drumkit", "drum kit"},
	{"sub category", "subcategory"},
	{"choir&vocals", "choir vocals"},
	{"church&christmas", "church christmas"},
	{"euro dance", "eurodance"},
	{"euro organ artist", "organ artist"},
	{"fm xpanded", "fm expanded"},
	{"japanes", "japanese"},
	{"vietnamise", "vietnamese"},
	{"bariton", "baritone"},
	{"sa 2", "sa2"},
}

var dashVariants = strings.NewReplacer("–", "-", "—", "-")

// NormalizeQuery rewrites a free-text label into a best-effort search
// query: lower-cased, en/em dashes folded to ASCII, the fix table applied,
// dotted abbreviations split into words, and whitespace collapsed. When
// everything normalizes away, the trimmed original label is returned as-is.
// Pure and deterministic; no I/O.
func NormalizeQuery(label string) string {
	raw := strings.TrimSpace(label)

	q := dashVariants.Replace(strings.ToLower(raw))
	for _, f := range queryFixes {
		if strings.Contains(q, f.from) {
			q = strings.ReplaceAll(q, f.from, f.to)
		}
	}
	q = strings.ReplaceAll(q, ".", " ")
	q = strings.Join(strings.Fields(q), " ")

	if q == "" {
		return raw
	}
	return q
}
