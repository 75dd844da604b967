package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vgmirror-cli/vgmirror/constant"
	"github.com/vgmirror-cli/vgmirror/fetch"
	"github.com/vgmirror-cli/vgmirror/filesystem"
	"github.com/vgmirror-cli/vgmirror/icon"
	"github.com/vgmirror-cli/vgmirror/key"
	"github.com/vgmirror-cli/vgmirror/source"
)

func init() {
	filesystem.SetMemMapFs()
}

// fakeLoader serves canned markup by URL, standing in for the browser session.
type fakeLoader struct {
	pages map[string]string
	calls []string
}

func (f *fakeLoader) HTML(url, _ string) (string, error) {
	f.calls = append(f.calls, url)
	html, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("no page for %s", url)
	}
	return html, nil
}

func zipBody(entries map[string]string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, _ := w.Create(name)
		_, _ = f.Write([]byte(content))
	}
	_ = w.Close()
	return buf.Bytes()
}

// testArchive wires a fake loader and file server describing one console
// holding one game with MP3, FLAC and WAV soundtracks plus a cover.
func testArchive() (*fakeLoader, *httptest.Server, *int) {
	hits := new(int)

	mux := http.NewServeMux()
	mux.HandleFunc("/covers/sample.png", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		_, _ = w.Write([]byte("cover bytes"))
	})
	mux.HandleFunc("/downloads/sample-wav.zip", func(w http.ResponseWriter, r *http.Request) {
		*hits++
		_, _ = w.Write(zipBody(map[string]string{
			"01 Title Theme.wav": "audio one",
			"02 Stage One.wav":   "audio two",
		}))
	})
	server := httptest.NewServer(mux)

	rootURL := constant.SiteBase + constant.MusicPath
	consoleURL := constant.SiteBase + "/music/retroconsole"
	gameURL := constant.SiteBase + "/music/retroconsole/sample-game"

	loader := &fakeLoader{pages: map[string]string{
		rootURL: `
<html><body>
<h2>Consoles</h2>
<ul><li><a href="/music/retroconsole">RetroConsole</a></li></ul>
</body></html>`,
		consoleURL + "?page=1": `
<html><body>
<table id="gamelist">
  <tr class="regularrow">
    <td class="name"><a href="/music/retroconsole/sample-game">Sample Game</a></td>
  </tr>
</table>
</body></html>`,
		consoleURL + "?page=2": `<html><body><table id="gamelist"></table></body></html>`,
		gameURL: fmt.Sprintf(`
<html><body>
<div id="music_cover"><img src="%s/covers/sample.png"></div>
<div id="mass_download">
  <a href="%s/downloads/sample-mp3.zip"><p>MP3 Soundtrack</p></a>
  <a href="%s/downloads/sample-flac.zip"><p>FLAC Soundtrack</p></a>
  <a href="%s/downloads/sample-wav.zip"><p>WAV Soundtrack</p></a>
</div>
<div id="music_info">
  <p><span class="infoname">Release date:</span><span class="infodata">1991</span></p>
</div>
</body></html>`, server.URL, server.URL, server.URL, server.URL),
	}}

	return loader, server, hits
}

func testPipeline(loader PageLoader, out *bytes.Buffer) *Pipeline {
	return &Pipeline{
		Out:      out,
		loader:   loader,
		fetcher:  fetch.New(),
		root:     "/downloads",
		priority: []string{"original", "wav", "flac", "mp3"},
	}
}

func TestRun(t *testing.T) {
	Convey("Run", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()

		loader, server, hits := testArchive()
		defer server.Close()

		var out bytes.Buffer
		pipeline := testPipeline(loader, &out)

		Convey("Should mirror the full tree choosing the best format", func() {
			viper.Set(key.IconsVariant, "plain")
			defer viper.Set(key.IconsVariant, "")

			So(pipeline.Run(context.Background()), ShouldBeNil)

			// Listing and fresh-download progress lines carry their icons.
			So(out.String(), ShouldContainSubstring, icon.Get(icon.Music))
			So(out.String(), ShouldContainSubstring, icon.Get(icon.Download))

			content, err := fs.ReadFile("/downloads/RetroConsole/Sample Game/01 Title Theme.wav")
			So(err, ShouldBeNil)
			So(string(content), ShouldEqual, "audio one")

			cover, err := fs.ReadFile("/downloads/RetroConsole/Sample Game/cover.png")
			So(err, ShouldBeNil)
			So(string(cover), ShouldEqual, "cover bytes")

			archiveExists, _ := fs.Exists("/downloads/RetroConsole/Sample Game/" + fetch.ArchiveName)
			So(archiveExists, ShouldBeFalse)

			// The WAV tier outranks FLAC and MP3; exactly one cover and one archive fetch.
			So(*hits, ShouldEqual, 2)

			Convey("And a second run should touch nothing", func() {
				var again bytes.Buffer
				rerun := testPipeline(loader, &again)

				So(rerun.Run(context.Background()), ShouldBeNil)
				So(*hits, ShouldEqual, 2)
				So(again.String(), ShouldContainSubstring, "already complete")
			})
		})

		Convey("Should clean stale incomplete directories before fetching", func() {
			So(fs.MkdirAll("/downloads/RetroConsole/Sample Game", 0755), ShouldBeNil)
			So(fs.WriteFile("/downloads/RetroConsole/Sample Game/cover.png", []byte("stale"), 0655), ShouldBeNil)

			So(pipeline.Run(context.Background()), ShouldBeNil)

			// The cover-only directory was wiped, then mirrored from scratch.
			cover, err := fs.ReadFile("/downloads/RetroConsole/Sample Game/cover.png")
			So(err, ShouldBeNil)
			So(string(cover), ShouldEqual, "cover bytes")

			payload, _ := fs.Exists("/downloads/RetroConsole/Sample Game/01 Title Theme.wav")
			So(payload, ShouldBeTrue)
		})

		Convey("Should fail only when the root listing is unreachable", func() {
			broken := &fakeLoader{pages: map[string]string{}}
			So(testPipeline(broken, &out).Run(context.Background()), ShouldNotBeNil)
		})

		Convey("Should honor cancellation between games", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			So(pipeline.Run(ctx), ShouldEqual, context.Canceled)
		})
	})
}

func TestConsolesFilter(t *testing.T) {
	Convey("Consoles", t, func() {
		rootURL := constant.SiteBase + constant.MusicPath
		loader := &fakeLoader{pages: map[string]string{
			rootURL: `
<html><body>
<h2>Consoles</h2>
<ul>
  <li><a href="/music/retroconsole">RetroConsole</a></li>
  <li><a href="/music/gameboy">Game Boy / GBC</a></li>
</ul>
</body></html>`,
		}}

		Convey("Should return every console without a filter", func() {
			pipeline := &Pipeline{loader: loader}
			consoles, err := pipeline.Consoles()

			So(err, ShouldBeNil)
			So(consoles, ShouldHaveLength, 2)
		})

		Convey("Should match filter entries by name or directory name", func() {
			pipeline := &Pipeline{loader: loader, filter: []string{"game boy"}}
			consoles, err := pipeline.Consoles()

			So(err, ShouldBeNil)
			So(consoles, ShouldHaveLength, 1)
			So(consoles[0].Name, ShouldEqual, "Game Boy / GBC")
		})

		Convey("Should yield nothing for an unknown filter", func() {
			pipeline := &Pipeline{loader: loader, filter: []string{"dreamcast"}}
			consoles, err := pipeline.Consoles()

			So(err, ShouldBeNil)
			So(consoles, ShouldBeEmpty)
		})
	})
}

func TestProcessGameStates(t *testing.T) {
	Convey("processGame", t, func() {
		filesystem.SetMemMapFs()

		game := source.Game{
			Name:    "Sample Game",
			URL:     constant.SiteBase + "/music/retroconsole/sample-game",
			Console: source.Console{Name: "RetroConsole"},
		}

		Convey("Should end failed when the game page cannot be loaded", func() {
			loader := &fakeLoader{pages: map[string]string{}}
			pipeline := testPipeline(loader, &bytes.Buffer{})

			report := pipeline.processGame(context.Background(), game)

			So(report.State, ShouldEqual, StateFailed)
			So(report.Err, ShouldNotBeNil)
		})

		Convey("Should end skipped when no format matches the priority", func() {
			loader := &fakeLoader{pages: map[string]string{
				game.URL: `
<html><body>
<div id="mass_download"><a href="/downloads/rip.zip"><p>MIDI Rip</p></a></div>
<div id="music_info"></div>
</body></html>`,
			}}
			pipeline := testPipeline(loader, &bytes.Buffer{})

			report := pipeline.processGame(context.Background(), game)

			So(report.State, ShouldEqual, StateSkippedNoFormat)
			So(report.State.Terminal(), ShouldBeTrue)
		})
	})
}
