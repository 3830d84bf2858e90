package analyzer

import (
	"strings"

	"github.com/logreport/internal/parser"
)

// Browser is a user-agent category. The declaration order is the tie-break
// order when picking the most popular browser.
type Browser int

const (
	Firefox Browser = iota
	Chrome
	InternetExplorer
	Safari

	numBrowsers
)

// Browsers lists every category in tie-break order.
var Browsers = [numBrowsers]Browser{Firefox, Chrome, InternetExplorer, Safari}

func (b Browser) String() string {
	switch b {
	case Firefox:
		return "Firefox"
	case Chrome:
		return "Chrome"
	case InternetExplorer:
		return "Internet Explorer"
	case Safari:
		return "Safari"
	default:
		return "unknown"
	}
}

// BrowserTally counts rows per category, indexed by Browser.
type BrowserTally [numBrowsers]int

// Sum returns the number of classified rows.
func (t BrowserTally) Sum() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// BrowserReport is the result of one classification pass.
type BrowserReport struct {
	Tally        BrowserTally `json:"tally"`
	Unclassified int          `json:"unclassified"`
	Winner       Browser      `json:"winner"`
}

// ClassifyBrowser maps a user agent to a category, first match wins:
// Firefox, then Chrome, then MSIE, then Safari. The Safari test also
// excludes "Chrome", which the Chrome test above already guarantees.
func ClassifyBrowser(ua string) (Browser, bool) {
	switch {
	case strings.Contains(ua, "Firefox"):
		return Firefox, true
	case strings.Contains(ua, "Chrome"):
		return Chrome, true
	case strings.Contains(ua, "MSIE"):
		return InternetExplorer, true
	case strings.Contains(ua, "Safari") && !strings.Contains(ua, "Chrome"):
		return Safari, true
	}
	return 0, false
}

// PopularBrowser tallies user agents and picks the category with the most
// rows. Ties, including the all-zero tally of an empty dataset, go to the
// category declared first.
func PopularBrowser(rows parser.Dataset) BrowserReport {
	var r BrowserReport
	for _, row := range rows {
		ua, ok := row.UserAgent()
		if !ok {
			r.Unclassified++
			continue
		}
		b, ok := ClassifyBrowser(ua)
		if !ok {
			r.Unclassified++
			continue
		}
		r.Tally[b]++
	}

	r.Winner = Browsers[0]
	for _, b := range Browsers[1:] {
		if r.Tally[b] > r.Tally[r.Winner] {
			r.Winner = b
		}
	}
	return r
}
