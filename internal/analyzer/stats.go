package analyzer

import (
	"github.com/logreport/internal/parser"
)

// Report bundles the three summaries computed over one dataset.
type Report struct {
	Rows     int           `json:"rows"`
	Images   ImageReport   `json:"images"`
	Browsers BrowserReport `json:"browsers"`
	Hourly   HourlyReport  `json:"hourly"`
}

// Compute runs the image, browser and hourly passes one after another over
// the same dataset. The dataset is only read.
func Compute(rows parser.Dataset) Report {
	return Report{
		Rows:     rows.Len(),
		Images:   ImageHits(rows),
		Browsers: PopularBrowser(rows),
		Hourly:   HourlyHits(rows),
	}
}

func pct(count int, total float64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / total * 100
}
