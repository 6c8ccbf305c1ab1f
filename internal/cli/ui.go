package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/biblio/pkg/books"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// =============================================================================
// Status Output
// =============================================================================

// printer writes styled lines to a command's output stream.
type printer struct {
	w io.Writer
}

func (p printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

// success prints a success message.
func (p printer) success(format string, args ...any) {
	p.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// error prints an error message.
func (p printer) error(format string, args ...any) {
	p.line(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// warning prints a warning message.
func (p printer) warning(format string, args ...any) {
	p.line(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// info prints an info/status message.
func (p printer) info(format string, args ...any) {
	p.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints a detail line (indented).
func (p printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// keyValue prints a labeled value. Empty values are skipped.
func (p printer) keyValue(key, value string) {
	if value == "" {
		return
	}
	p.line("  " + styleKey.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Book Output
// =============================================================================

// record prints a resolved book as a titled block of fields.
func (p printer) record(isbn string, rec *books.Record) {
	title := rec.Title
	if rec.Subtitle != "" {
		title += ": " + rec.Subtitle
	}
	p.success("%s %s", StyleTitle.Render(title), StyleDim.Render("("+isbn+")"))

	p.keyValue("Authors", strings.Join(rec.Authors, ", "))
	p.keyValue("Published", rec.PublishedDate)
	if rec.PageCount > 0 {
		p.keyValue("Pages", StyleNumber.Render(fmt.Sprint(rec.PageCount)))
	}
	p.keyValue("Categories", strings.Join(rec.Categories, ", "))

	ids := make([]string, 0, len(rec.Identifiers))
	for _, id := range rec.Identifiers {
		ids = append(ids, id.Type+" "+id.Identifier)
	}
	p.keyValue("Identifiers", strings.Join(ids, ", "))

	if rec.ShortDescription != nil {
		p.keyValue("Snippet", *rec.ShortDescription)
	}
	if rec.Thumbnail != "" {
		p.keyValue("Cover", StyleLink.Render(rec.Thumbnail))
	}
}

// lookupError prints a resolved LookupError.
func (p printer) lookupError(isbn string, lerr *books.LookupError) {
	p.warning("%s: %s", isbn, lerr.String())
}
