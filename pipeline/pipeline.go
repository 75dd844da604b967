// Package pipeline orchestrates the archive traversal: consoles, games, covers, and music archives.
//
// The traversal is single-threaded and sequential: one console at a time,
// one game at a time, one file at a time. Per-game and per-console errors
// are isolated and logged; only setup-time errors abort the run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vgmirror-cli/vgmirror/constant"
	"github.com/vgmirror-cli/vgmirror/fetch"
	"github.com/vgmirror-cli/vgmirror/format"
	"github.com/vgmirror-cli/vgmirror/icon"
	"github.com/vgmirror-cli/vgmirror/key"
	"github.com/vgmirror-cli/vgmirror/log"
	"github.com/vgmirror-cli/vgmirror/reconcile"
	"github.com/vgmirror-cli/vgmirror/scrape"
	"github.com/vgmirror-cli/vgmirror/source"
	"github.com/vgmirror-cli/vgmirror/status"
	"github.com/vgmirror-cli/vgmirror/util"
)

// PageLoader renders a page and returns its markup once the expected content
// selector is present (or the bounded wait expires).
type PageLoader interface {
	HTML(url, waitSelector string) (string, error)
}

// Pipeline drives the fixed traversal over a page loader and fetcher.
type Pipeline struct {
	// Out receives per-console and per-game progress lines.
	Out io.Writer

	loader   PageLoader
	fetcher  *fetch.Fetcher
	root     string
	delay    time.Duration
	priority []string
	filter   []string
}

// New assembles a Pipeline from the given page loader and global configuration.
func New(loader PageLoader) *Pipeline {
	return &Pipeline{
		Out:      os.Stdout,
		loader:   loader,
		fetcher:  fetch.New(),
		root:     viper.GetString(key.DownloadsPath),
		delay:    time.Duration(viper.GetInt(key.ScraperDelay)) * time.Second,
		priority: format.Priority(),
		filter: lo.Map(viper.GetStringSlice(key.DownloadsConsoles), func(name string, _ int) string {
			return strings.ToLower(name)
		}),
	}
}

// Consoles loads the root listing page and returns the consoles to traverse,
// applying the configured console filter.
func (p *Pipeline) Consoles() ([]source.Console, error) {
	html, err := p.loader.HTML(constant.SiteBase+constant.MusicPath, scrape.WaitConsoles)
	if err != nil {
		return nil, err
	}

	consoles := scrape.Consoles(html)
	if len(p.filter) == 0 {
		return consoles, nil
	}

	return lo.Filter(consoles, func(c source.Console, _ int) bool {
		name := strings.ToLower(c.Name)
		for _, wanted := range p.filter {
			if name == wanted || strings.ToLower(c.Dirname()) == wanted {
				return true
			}
		}
		return false
	}), nil
}

// Run executes the full traversal. It returns an error only when the root
// console listing cannot be loaded; everything below that is isolated,
// reported, and skipped past.
func (p *Pipeline) Run(ctx context.Context) error {
	consoles, err := p.Consoles()
	if err != nil {
		return err
	}
	if len(consoles) == 0 {
		p.printf("no consoles found\n")
		return nil
	}

	p.printf("mirroring %s\n", util.Quantify(len(consoles), "console", "consoles"))

	for i, console := range consoles {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.printf("%s %s\n", icon.Get(icon.Progress), console.Name)
		if err := p.runConsole(ctx, console); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Errorf("console %s: %v", console.Name, err)
			p.printf("%s %s: %v\n", icon.Get(icon.Fail), console.Name, err)
			continue
		}
		p.printf("%s %s completed, %s left\n",
			icon.Get(icon.Success), console.Name,
			util.Quantify(len(consoles)-i-1, "console", "consoles"))
	}

	return nil
}

// runConsole paginates the console's game list, reconciles stale local
// state, and processes every game in order.
func (p *Pipeline) runConsole(ctx context.Context, console source.Console) error {
	games, err := p.games(ctx, console)
	if err != nil {
		return err
	}

	p.printf("  %s found %s\n", icon.Get(icon.Music), util.Quantify(len(games), "game", "games"))

	if err := reconcile.Console(filepath.Join(p.root, console.Dirname())); err != nil {
		return fmt.Errorf("reconcile %s: %w", console.Name, err)
	}

	for i, game := range games {
		if err := ctx.Err(); err != nil {
			return err
		}
		report := p.processGame(ctx, game)
		p.report(report, i+1, len(games))
	}

	return nil
}

// games walks the console's paginated listing until a page yields no rows.
func (p *Pipeline) games(ctx context.Context, console source.Console) ([]source.Game, error) {
	var games []source.Game

	for page := 1; ; page++ {
		if err := p.pause(ctx); err != nil {
			return nil, err
		}

		pageURL := fmt.Sprintf("%s?page=%d", console.URL, page)
		html, err := p.loader.HTML(pageURL, scrape.WaitGames)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			// A broken page deep in the pagination ends the listing rather
			// than aborting games already collected.
			log.Warnf("pagination stopped at %s: %v", pageURL, err)
			break
		}

		batch := scrape.Games(html, console)
		if len(batch) == 0 {
			break
		}
		games = append(games, batch...)
	}

	return games, nil
}

// processGame runs the per-game state machine to a terminal state. All
// failures are captured in the returned Report; none propagate.
func (p *Pipeline) processGame(ctx context.Context, game source.Game) Report {
	report := Report{Game: game, State: StatePending}
	dir := game.Dir(p.root)

	if err := reconcile.Game(dir); err != nil {
		report.State = StateFailed
		report.Err = fmt.Errorf("reconcile: %w", err)
		return report
	}
	report.State = StateDirReconciled

	if err := p.pause(ctx); err != nil {
		report.State = StateFailed
		report.Err = err
		return report
	}

	html, err := p.loader.HTML(game.URL, scrape.WaitGamePage)
	if err != nil {
		report.State = StateFailed
		report.Err = err
		p.record(game, source.GamePage{}, status.Fail, err.Error())
		return report
	}

	page := scrape.GamePage(html)

	if cover, ok := page.Cover.Get(); ok {
		if _, err := p.fetcher.File(ctx, cover, coverPath(dir, cover)); err != nil {
			// A missing cover never fails the game; the music payload decides.
			log.Warnf("cover for %s: %v", game.Name, err)
		} else {
			report.State = StateCoverDone
		}
	} else {
		report.State = StateSkippedNoCover
	}

	best, ok := format.SelectBest(page.Formats, p.priority).Get()
	if !ok {
		report.State = StateSkippedNoFormat
		log.Warnf("no suitable format for %s", game.Name)
		p.record(game, page, status.NoFormat, "no suitable link")
		return report
	}
	report.State = StateFormatSelected
	log.Infof("selected %s for %s", best.Label, game.Name)

	report.Fetch, err = p.fetcher.Archive(ctx, best.URL, dir)
	if err != nil {
		report.State = StateFailed
		report.Err = err
		p.record(game, page, status.Fail, err.Error())
		return report
	}

	report.State = StateMusicDone
	p.record(game, page, status.Done, "")
	return report
}

// record persists the game's outcome to the status ledger. Ledger failures
// are logged, never fatal: the filesystem remains the source of truth for
// resumption.
func (p *Pipeline) record(game source.Game, page source.GamePage, outcome status.Outcome, comment string) {
	rec := status.NewRecord(game, page)
	rec.Outcome = outcome
	rec.Comment = comment
	if err := status.Save(rec); err != nil {
		log.Warnf("save status for %s: %v", game.Name, err)
	}
}

// report prints the per-game progress line.
func (p *Pipeline) report(r Report, index, total int) {
	position := fmt.Sprintf("%d of %d", index, total)

	switch r.State {
	case StateMusicDone:
		if r.Fetch == fetch.Skipped {
			p.printf("  %s %s (%s) already complete\n", icon.Get(icon.Skip), r.Game.Name, position)
		} else {
			p.printf("  %s %s (%s)\n", icon.Get(icon.Download), r.Game.Name, position)
		}
	case StateSkippedNoFormat:
		p.printf("  %s %s (%s) no suitable format\n", icon.Get(icon.Warning), r.Game.Name, position)
	case StateFailed:
		log.Errorf("game %s: %v", r.Game.Name, r.Err)
		p.printf("  %s %s (%s) %v\n", icon.Get(icon.Fail), r.Game.Name, position, r.Err)
	default:
		p.printf("  %s %s (%s) %s\n", icon.Get(icon.Progress), r.Game.Name, position, r.State)
	}
}

// pause applies the configured inter-request delay, honoring cancellation.
func (p *Pipeline) pause(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.delay):
		return nil
	}
}

func (p *Pipeline) printf(format string, args ...any) {
	fmt.Fprintf(p.Out, format, args...)
}

// coverPath derives the local cover filename from the upstream URL's extension.
func coverPath(dir, coverURL string) string {
	ext := ""
	if parsed, err := url.Parse(coverURL); err == nil {
		ext = path.Ext(parsed.Path)
	}
	if ext == "" {
		ext = ".jpg"
	}
	return filepath.Join(dir, "cover"+ext)
}
