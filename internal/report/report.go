// Package report prints the console listings of a run.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/vk/gsaopt/internal/optimizer"
)

var (
	colorTitle   = lipgloss.Color("#2CD7C7")
	colorListing = lipgloss.Color("#F4D03F")
	colorMuted   = lipgloss.Color("#2C4A54")
)

// Printer writes listings and run summaries to w.
type Printer struct {
	w       io.Writer
	title   lipgloss.Style
	listing lipgloss.Style
	muted   lipgloss.Style
}

// New creates a Printer. With color off every style renders plain text.
func New(w io.Writer, color bool) *Printer {
	if !color {
		plain := lipgloss.NewStyle()
		return &Printer{w: w, title: plain, listing: plain, muted: plain}
	}
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		title:   r.NewStyle().Bold(true).Foreground(colorTitle),
		listing: r.NewStyle().Foreground(colorListing),
		muted:   r.NewStyle().Foreground(colorMuted),
	}
}

// ColorEnabled reports whether output to w should be highlighted.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Listing prints a titled block of resource lines.
func (p *Printer) Listing(title string, lines []string) error {
	if _, err := fmt.Fprintln(p.w, p.title.Render(title)); err != nil {
		return err
	}
	for _, l := range lines {
		// Lines are rendered one at a time so lipgloss does not pad them
		// to a common width.
		if _, err := fmt.Fprintln(p.w, p.listing.Render(l)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.w)
	return err
}

// Stats prints the pass counters of a run.
func (p *Printer) Stats(s optimizer.Stats) error {
	_, err := fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf(
		"walks %d, merges %d, extractions %d, dead stores %d, renames %d",
		s.Walks, s.Merges, s.Extractions, s.DeadStores, s.Renames)))
	return err
}

// Written prints where the results were stored.
func (p *Printer) Written(dir string, paths []string) error {
	if _, err := fmt.Fprintln(p.w, p.title.Render("Written to "+dir)); err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := fmt.Fprintln(p.w, "  "+path); err != nil {
			return err
		}
	}
	return nil
}
