package analyzer

import (
	"regexp"

	"github.com/logreport/internal/parser"
)

var imageRe = regexp.MustCompile(`(?i)\.(jpg|gif|png)$`)

// ImageReport is the share of requests for .jpg, .gif and .png resources.
type ImageReport struct {
	Total   int     `json:"total"`
	Hits    int     `json:"hits"`
	Percent float64 `json:"percent"`
}

// IsImage reports whether resource ends in .jpg, .gif or .png, any case.
func IsImage(resource string) bool {
	return imageRe.MatchString(resource)
}

// ImageHits counts image requests. Rows without a resource field count
// toward the total but never as a hit. An empty dataset gives 0%.
func ImageHits(rows parser.Dataset) ImageReport {
	r := ImageReport{Total: rows.Len()}
	for _, row := range rows {
		if res, ok := row.Resource(); ok && IsImage(res) {
			r.Hits++
		}
	}
	r.Percent = pct(r.Hits, float64(r.Total))
	return r
}
