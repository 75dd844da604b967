package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vgmirror-cli/vgmirror/filesystem"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should preserve interior whitespace", func() {
			So(SanitizeFilename("Sample Game"), ShouldEqual, "Sample Game")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("file__name.txt"), ShouldEqual, "file_name.txt")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
			So(SanitizeFilename("  padded  "), ShouldEqual, "padded")
		})
		Convey("Should be idempotent", func() {
			once := SanitizeFilename(`Legend of Foo: Bar's Quest / Remix`)
			So(SanitizeFilename(once), ShouldEqual, once)
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "game", "games"), ShouldEqual, "1 game")
		So(Quantify(2, "game", "games"), ShouldEqual, "2 games")
		So(Quantify(0, "game", "games"), ShouldEqual, "0 games")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("path/to/music.zip"), ShouldEqual, "music")
		So(FileStem("cover"), ShouldEqual, "cover")
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()
		fs := filesystem.API()

		Convey("Should remove a file", func() {
			So(fs.WriteFile("/tmp/a.txt", []byte("x"), 0655), ShouldBeNil)
			So(Delete("/tmp/a.txt"), ShouldBeNil)
			exists, _ := fs.Exists("/tmp/a.txt")
			So(exists, ShouldBeFalse)
		})

		Convey("Should remove a directory recursively", func() {
			So(fs.MkdirAll("/tmp/dir/sub", 0755), ShouldBeNil)
			So(fs.WriteFile("/tmp/dir/sub/a.txt", []byte("x"), 0655), ShouldBeNil)
			So(Delete("/tmp/dir"), ShouldBeNil)
			exists, _ := fs.Exists("/tmp/dir")
			So(exists, ShouldBeFalse)
		})

		Convey("Should error on a missing path", func() {
			So(Delete("/tmp/missing"), ShouldNotBeNil)
		})
	})
}
