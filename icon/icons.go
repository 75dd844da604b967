package icon

// Icon identifies a renderable UI symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Skip
	Progress
	Download
	Music
	Warning
)

// icons is the global registry mapping each Icon to its per-variant glyphs.
var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "[ok]",
		kaomoji: "(￣▽￣)ノ",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "[fail]",
		kaomoji: "(╯°□°)╯",
		squares: "🟥",
	},
	Skip: {
		emoji:   "⏭️",
		nerd:    "",
		plain:   "[skip]",
		kaomoji: "(－ω－) zzZ",
		squares: "🟨",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "[..]",
		kaomoji: "(・・;)",
		squares: "🟦",
	},
	Download: {
		emoji:   "⬇️",
		nerd:    "",
		plain:   "[dl]",
		kaomoji: "(ノ^∇^)ノ",
		squares: "🟪",
	},
	Music: {
		emoji:   "🎵",
		nerd:    "",
		plain:   "[♪]",
		kaomoji: "(^_^♪)",
		squares: "🟫",
	},
	Warning: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "[warn]",
		kaomoji: "(・_・;)",
		squares: "🟧",
	},
}
