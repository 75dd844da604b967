package status

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vgmirror-cli/vgmirror/filesystem"
	"github.com/vgmirror-cli/vgmirror/source"
)

func init() {
	filesystem.SetMemMapFs()
}

func sampleRecord(outcome Outcome) *Record {
	game := source.Game{
		Name:    "Sample Game",
		URL:     "https://www.zophar.net/music/retroconsole/sample-game",
		Console: source.Console{Name: "RetroConsole"},
	}
	page := source.GamePage{ReleaseDate: "1991", Developer: "Sample Dev", Publisher: "Sample Pub"}

	record := NewRecord(game, page)
	record.Outcome = outcome
	return record
}

func TestLedger(t *testing.T) {
	Convey("Status ledger", t, func() {
		Convey("Should start empty", func() {
			records, err := Get()
			So(err, ShouldBeNil)
			So(records, ShouldBeEmpty)
		})

		Convey("Should persist and retrieve a record", func() {
			record := sampleRecord(Done)
			So(Save(record), ShouldBeNil)

			records, err := Get()
			So(err, ShouldBeNil)
			So(records, ShouldContainKey, record.URL)
			So(records[record.URL].Game, ShouldEqual, "Sample Game")
			So(records[record.URL].ReleaseDate, ShouldEqual, "1991")

			So(Remove(record), ShouldBeNil)
		})

		Convey("Should overwrite an existing record for the same game", func() {
			So(Save(sampleRecord(Fail)), ShouldBeNil)
			record := sampleRecord(Done)
			So(Save(record), ShouldBeNil)

			records, err := Get()
			So(err, ShouldBeNil)
			So(records[record.URL].Outcome, ShouldEqual, Done)

			So(Remove(record), ShouldBeNil)
		})

		Convey("Should list only unfinished outcomes as failed", func() {
			done := sampleRecord(Done)
			failed := sampleRecord(Fail)
			failed.URL = "https://www.zophar.net/music/retroconsole/broken-game"
			noFormat := sampleRecord(NoFormat)
			noFormat.URL = "https://www.zophar.net/music/retroconsole/odd-game"

			So(Save(done), ShouldBeNil)
			So(Save(failed), ShouldBeNil)
			So(Save(noFormat), ShouldBeNil)

			records, err := Failed()
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 2)

			So(Remove(done), ShouldBeNil)
			So(Remove(failed), ShouldBeNil)
			So(Remove(noFormat), ShouldBeNil)
		})
	})
}

func TestRecordString(t *testing.T) {
	Convey("Record String", t, func() {
		record := sampleRecord(Done)
		So(record.String(), ShouldEqual, "RetroConsole / Sample Game: done")
	})
}
