package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/logreport/internal/analyzer"
)

// WriteReport prints the image share, the most popular browser and the 24
// hourly counts, in that order. Headline lines are bold when w is a color
// terminal; any other writer receives plain text.
func WriteReport(w io.Writer, r analyzer.Report) error {
	renderer := lipgloss.NewRenderer(w)
	headline := renderer.NewStyle().Bold(true)

	if _, err := fmt.Fprintln(w, headline.Render(ImageLine(r.Images))); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, headline.Render(BrowserLine(r.Browsers))); err != nil {
		return err
	}
	for _, hc := range r.Hourly.Ranked {
		if _, err := fmt.Fprintln(w, HourLine(hc)); err != nil {
			return err
		}
	}
	return nil
}

func ImageLine(r analyzer.ImageReport) string {
	return fmt.Sprintf("Image requests account for %.1f%% of all requests", r.Percent)
}

func BrowserLine(r analyzer.BrowserReport) string {
	return fmt.Sprintf("The most popular browser is %s", r.Winner)
}

func HourLine(hc analyzer.HourCount) string {
	return fmt.Sprintf("Hour %02d has %d hits", hc.Hour, hc.Count)
}
