package format

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vgmirror-cli/vgmirror/key"
	"github.com/vgmirror-cli/vgmirror/source"
)

func options(labels ...string) []source.FormatOption {
	opts := make([]source.FormatOption, 0, len(labels))
	for _, label := range labels {
		opts = append(opts, source.FormatOption{Label: label, URL: "https://example.com/" + label})
	}
	return opts
}

func TestMatches(t *testing.T) {
	Convey("Matches", t, func() {
		Convey("Should match case-insensitively by substring", func() {
			So(Matches("MP3 Soundtrack", "mp3"), ShouldBeTrue)
			So(Matches("FLAC Soundtrack", "mp3"), ShouldBeFalse)
		})

		Convey("Should expand the original tier to emulated formats", func() {
			So(Matches("Original Soundtrack", "original"), ShouldBeTrue)
			So(Matches("Emulated (SPC)", "original"), ShouldBeTrue)
			So(Matches("WAV Soundtrack", "original"), ShouldBeFalse)
		})
	})
}

func TestSelectBest(t *testing.T) {
	priority := []string{"original", "wav", "flac", "mp3"}

	Convey("SelectBest", t, func() {
		Convey("Should pick the highest available tier", func() {
			best := SelectBest(options("MP3 Soundtrack", "FLAC Soundtrack", "WAV Soundtrack"), priority)

			So(best.IsPresent(), ShouldBeTrue)
			So(best.MustGet().Label, ShouldEqual, "WAV Soundtrack")
		})

		Convey("Should prefer original over everything else", func() {
			best := SelectBest(options("MP3 Soundtrack", "Original Soundtrack", "WAV Soundtrack"), priority)

			So(best.MustGet().Label, ShouldEqual, "Original Soundtrack")
		})

		Convey("Should break ties by parse order", func() {
			best := SelectBest(options("MP3 Set A", "MP3 Set B"), priority)

			So(best.MustGet().Label, ShouldEqual, "MP3 Set A")
		})

		Convey("Should be deterministic for a fixed input", func() {
			opts := options("FLAC Soundtrack", "MP3 Soundtrack")
			first := SelectBest(opts, priority)

			for i := 0; i < 10; i++ {
				So(SelectBest(opts, priority).MustGet(), ShouldResemble, first.MustGet())
			}
		})

		Convey("Should yield no selection for empty or unrecognized inputs", func() {
			So(SelectBest(nil, priority).IsAbsent(), ShouldBeTrue)
			So(SelectBest(options("MIDI Rip"), priority).IsAbsent(), ShouldBeTrue)
			So(SelectBest(options("MP3 Soundtrack"), nil).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestPriority(t *testing.T) {
	Convey("Priority", t, func() {
		viper.Set(key.DownloadsFormatPriority, []string{"flac", "mp3"})
		defer viper.Set(key.DownloadsFormatPriority, []string{"original", "wav", "flac", "mp3"})

		So(Priority(), ShouldResemble, []string{"flac", "mp3"})
	})
}
