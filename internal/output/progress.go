package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
)

// ProgressBar renders download progress to a writer, normally stderr.
type ProgressBar struct {
	mu    sync.Mutex
	w     io.Writer
	width int
	drawn bool
	done  bool
}

// NewProgressBar creates a new progress bar writing to w.
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{w: w, width: 40}
}

// Update redraws the bar. With an unknown total (total <= 0) only the byte
// count is shown.
func (pb *ProgressBar) Update(read, total int64) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	pb.drawn = true

	if total <= 0 {
		fmt.Fprintf(pb.w, "\r  downloaded %s", humanize.Bytes(uint64(read)))
		return
	}

	pct := float64(read) / float64(total)
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * float64(pb.width))

	bar := strings.Repeat("=", filled) + strings.Repeat(" ", pb.width-filled)
	fmt.Fprintf(pb.w, "\r  [%s] %3.0f%% (%s/%s)", bar, pct*100,
		humanize.Bytes(uint64(read)), humanize.Bytes(uint64(total)))

	if read >= total && !pb.done {
		pb.done = true
		fmt.Fprintln(pb.w)
	}
}

// Finish ends the current line if the bar drew one and has not ended it.
func (pb *ProgressBar) Finish() {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	if pb.drawn && !pb.done {
		pb.done = true
		fmt.Fprintln(pb.w)
	}
}
