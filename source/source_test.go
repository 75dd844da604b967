package source

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConsoleDirname(t *testing.T) {
	Convey("Console.Dirname", t, func() {
		Convey("Should use the name verbatim when it is already safe", func() {
			c := Console{Name: "RetroConsole"}
			So(c.Dirname(), ShouldEqual, "RetroConsole")
		})

		Convey("Should keep only the part before a slash", func() {
			c := Console{Name: "Game Boy / GBC"}
			So(c.Dirname(), ShouldEqual, "Game Boy")
		})

		Convey("Should sanitize invalid characters", func() {
			c := Console{Name: "Consoles: Misc?"}
			So(c.Dirname(), ShouldEqual, "Consoles_ Misc")
		})
	})
}

func TestGameDir(t *testing.T) {
	Convey("Game.Dir", t, func() {
		game := Game{
			Name:    "Sample Game",
			URL:     "https://www.zophar.net/music/retroconsole/sample-game",
			Console: Console{Name: "RetroConsole"},
		}

		Convey("Should join root, console dir and game dir", func() {
			So(game.Dir("downloads"), ShouldEqual, filepath.Join("downloads", "RetroConsole", "Sample Game"))
		})

		Convey("Should preserve whitespace in the game name", func() {
			So(game.Dirname(), ShouldEqual, "Sample Game")
		})
	})
}
