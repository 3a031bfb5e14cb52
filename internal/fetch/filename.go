package fetch

import (
	"regexp"
	"strings"
)

var (
	unsafeRunes = regexp.MustCompile(`[^a-z0-9._-]+`)
	hyphenRuns  = regexp.MustCompile(`-+`)
)

// SafeFilename derives a stable, filesystem-safe base name from a label.
// The result always matches [a-z0-9._-]+ with no leading or trailing
// hyphens; inputs with nothing salvageable become "icon".
func SafeFilename(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.ReplaceAll(t, "&", "and")
	t = unsafeRunes.ReplaceAllString(t, "-")
	t = hyphenRuns.ReplaceAllString(t, "-")
	t = strings.Trim(t, "-")
	if t == "" {
		return "icon"
	}
	return t
}
