// Package scrape extracts consoles, game listings, and game detail data from archive page markup.
//
// All parsers are pure: they never mutate their input and return empty
// results on structural mismatch so a single broken page cannot abort a
// traversal.
package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/mo"
	"github.com/vgmirror-cli/vgmirror/constant"
	"github.com/vgmirror-cli/vgmirror/source"
)

// Readiness selectors: the element whose presence signals that a page's
// dynamic content has finished rendering.
const (
	WaitConsoles = "h2"
	WaitGames    = "#gamelist"
	WaitGamePage = "#music_info"
)

// Selectors for the archive's fixed page structure.
const (
	selGameRows  = "#gamelist .regularrow, #gamelist .regularrow_image"
	selGameName  = "td.name a"
	selCover     = "#music_cover img"
	selDownloads = "#mass_download a"
	selInfo      = "#music_info p"
)

// Consoles extracts every console listed under the "Consoles" section of the
// root music page, in document order.
func Consoles(html string) []source.Console {
	doc, err := document(html)
	if err != nil {
		return nil
	}

	var list *goquery.Selection
	doc.Find("h2").EachWithBreak(func(_ int, h2 *goquery.Selection) bool {
		if strings.TrimSpace(h2.Text()) == "Consoles" {
			list = h2.NextFiltered("ul")
			return false
		}
		return true
	})
	if list == nil {
		return nil
	}

	var consoles []source.Console
	list.Find("li a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		name := strings.TrimSpace(a.Text())
		if name == "" {
			return
		}
		consoles = append(consoles, source.Console{
			Name: name,
			URL:  absolutize(href),
		})
	})

	return consoles
}

// Games extracts every game row from a console listing page, in document order.
// An empty result signals the end of a paginated listing.
func Games(html string, console source.Console) []source.Game {
	doc, err := document(html)
	if err != nil {
		return nil
	}

	var games []source.Game
	doc.Find(selGameRows).Each(func(_ int, row *goquery.Selection) {
		a := row.Find(selGameName).First()
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		name := strings.TrimSpace(a.Text())
		if name == "" {
			return
		}
		games = append(games, source.Game{
			Name:    name,
			URL:     absolutize(href),
			Console: console,
		})
	})

	return games
}

// GamePage extracts the cover image, download format options, and release
// metadata from a game's detail page. A missing cover is an absent option,
// not an error.
func GamePage(html string) source.GamePage {
	page := source.GamePage{Cover: mo.None[string]()}

	doc, err := document(html)
	if err != nil {
		return page
	}

	if src, ok := doc.Find(selCover).First().Attr("src"); ok && src != "" {
		page.Cover = mo.Some(absolutize(src))
	}

	doc.Find(selDownloads).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		// The download label lives in a nested <p>; fall back to the anchor text.
		label := strings.TrimSpace(a.Find("p").First().Text())
		if label == "" {
			label = strings.TrimSpace(a.Text())
		}
		page.Formats = append(page.Formats, source.FormatOption{
			Label: label,
			URL:   absolutize(href),
		})
	})

	doc.Find(selInfo).Each(func(_ int, p *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(p.Find("span.infoname").Text()))
		data := strings.TrimSpace(p.Find("span.infodata").Text())
		switch {
		case strings.Contains(label, "release date"):
			page.ReleaseDate = data
		case strings.Contains(label, "developer"):
			page.Developer = data
		case strings.Contains(label, "publisher"):
			page.Publisher = data
		}
	})

	return page
}

func document(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// absolutize resolves site-relative hrefs against the archive base URL.
func absolutize(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return constant.SiteBase + href
}
