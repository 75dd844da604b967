// Package format implements deterministic selection of the best available soundtrack encoding.
package format

import (
	"strings"

	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/vgmirror-cli/vgmirror/key"
	"github.com/vgmirror-cli/vgmirror/source"
)

// aliases maps a priority token to the additional label substrings it matches.
// "original" also covers the archive's emulated native format labels.
var aliases = map[string][]string{
	"original": {"original", "emu"},
}

// Priority returns the configured format ranking, highest first.
func Priority() []string {
	return viper.GetStringSlice(key.DownloadsFormatPriority)
}

// Matches reports whether a format label belongs to the given priority tier.
func Matches(label, tier string) bool {
	label = strings.ToLower(label)
	tokens, ok := aliases[strings.ToLower(tier)]
	if !ok {
		tokens = []string{strings.ToLower(tier)}
	}
	for _, token := range tokens {
		if strings.Contains(label, token) {
			return true
		}
	}
	return false
}

// SelectBest picks the single best format option by the given priority
// ranking. Within a tier the first option in parse order wins, so the
// result is deterministic for a fixed input. An empty or unrecognized set
// yields no selection.
func SelectBest(formats []source.FormatOption, priority []string) mo.Option[source.FormatOption] {
	for _, tier := range priority {
		for _, f := range formats {
			if Matches(f.Label, tier) {
				return mo.Some(f)
			}
		}
	}
	return mo.None[source.FormatOption]()
}
