package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/simonhull/mediadissect"
	"github.com/simonhull/mediadissect/internal/id3v2"
	"github.com/simonhull/mediadissect/internal/isobmff"
)

type renderConfig struct {
	header bool
	data   bool
	dump   bool
}

var (
	headingStyle   = lipgloss.NewStyle().Bold(true)
	containerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	specialStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	fatalStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func renderResult(w io.Writer, result *mediadissect.Result, cfg renderConfig) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%s (%s, %d bytes)",
		result.Path, result.Format, result.Size)))

	switch {
	case result.Tag != nil:
		renderTag(w, result.Tag, cfg)
	case result.Boxes != nil:
		for _, box := range result.Boxes {
			renderBox(w, &box, 0, cfg)
		}
	}

	if len(result.Diagnostics) > 0 {
		fmt.Fprintln(w, headingStyle.Render("Diagnostics:"))
		for _, d := range result.Diagnostics {
			fmt.Fprintf(w, "  %s\n", severityStyle(d.Severity).Render(d.String()))
		}
	}
	fmt.Fprintln(w)
}

func severityStyle(s mediadissect.Severity) lipgloss.Style {
	switch s {
	case mediadissect.SeverityWarning:
		return warningStyle
	case mediadissect.SeverityError:
		return errorStyle
	case mediadissect.SeverityFatal:
		return fatalStyle
	default:
		return infoStyle
	}
}

func renderTag(w io.Writer, tag *mediadissect.Tag, cfg renderConfig) {
	if cfg.header {
		fmt.Fprintf(w, "ID3v2.%d.%d tag, %d bytes", tag.Version, tag.Revision, tag.Size)
		var flags []string
		if tag.Unsync() {
			flags = append(flags, "unsync")
		}
		if tag.HasExtendedHeader() {
			flags = append(flags, fmt.Sprintf("extended header (%d bytes)", tag.ExtendedSize))
		}
		if tag.Experimental() {
			flags = append(flags, "experimental")
		}
		if tag.HasFooter() {
			flags = append(flags, "footer")
		}
		if len(flags) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(flags, ", "))
		}
		fmt.Fprintln(w)
	}

	for i := range tag.Frames {
		renderFrame(w, &tag.Frames[i], 1, cfg)
	}
}

func renderFrame(w io.Writer, frame *mediadissect.Frame, indent int, cfg renderConfig) {
	pad := strings.Repeat("    ", indent)

	if cfg.header {
		label := fmt.Sprintf("'%s' (%s)", frame.ID, id3v2.Describe(frame.ID))
		switch frame.Content.(type) {
		case mediadissect.ChapterContent, mediadissect.TOCContent:
			label = containerStyle.Render(label)
		case mediadissect.PictureContent:
			label = specialStyle.Render(label)
		}
		fmt.Fprintf(w, "%sFrame at offset 0x%08X: %s - Size: %d bytes\n",
			pad, frame.Offset, label, frame.Size)
	}

	if cfg.data {
		for _, line := range frameLines(frame) {
			fmt.Fprintf(w, "%s    %s\n", pad, line)
		}
	}

	if cfg.dump && len(frame.Data) > 0 {
		limit := 0
		if _, ok := frame.Content.(mediadissect.PictureContent); ok {
			limit = 128
		}
		fmt.Fprintf(w, "%s    Raw data:\n", pad)
		for _, line := range strings.Split(formatHexdump(frame.Data, 0, limit), "\n") {
			fmt.Fprintf(w, "%s    %s\n", pad, line)
		}
	}

	// Chapter Addendum frames carry embedded sub-frames.
	switch c := frame.Content.(type) {
	case mediadissect.ChapterContent:
		for i := range c.Frames {
			renderFrame(w, &c.Frames[i], indent+1, cfg)
		}
	case mediadissect.TOCContent:
		for i := range c.Frames {
			renderFrame(w, &c.Frames[i], indent+1, cfg)
		}
	}
}

// frameLines summarizes a decoded frame payload, one line per fact.
func frameLines(frame *mediadissect.Frame) []string {
	switch c := frame.Content.(type) {
	case mediadissect.TextContent:
		if len(c.Strings) > 1 {
			return []string{fmt.Sprintf("Text (%s): %q", c.Encoding, c.Strings)}
		}
		return []string{fmt.Sprintf("Text (%s): %q", c.Encoding, c.Text)}
	case mediadissect.URLContent:
		return []string{fmt.Sprintf("URL: %s", c.URL)}
	case mediadissect.UserTextContent:
		return []string{fmt.Sprintf("%s (%s): %q", c.Description, c.Encoding, c.Value)}
	case mediadissect.UserURLContent:
		return []string{fmt.Sprintf("%s: %s", c.Description, c.URL)}
	case mediadissect.CommentContent:
		return []string{fmt.Sprintf("Comment [%s] %s: %q", c.Language, c.Description, c.Text)}
	case mediadissect.PictureContent:
		return []string{fmt.Sprintf("Picture: %s, %s, %d bytes, %q",
			id3v2.PictureTypeName(c.PictureType), c.MIMEType, len(c.Data), c.Description)}
	case mediadissect.UniqueFileIDContent:
		return []string{fmt.Sprintf("Unique file ID [%s]: %d bytes", c.Owner, len(c.Identifier))}
	case mediadissect.ChapterContent:
		lines := []string{fmt.Sprintf("Chapter %q: %s - %s",
			c.ElementID, formatMS(c.StartMS), formatMS(c.EndMS))}
		if c.OffsetsUsed() {
			lines = append(lines, fmt.Sprintf("Byte range: %d - %d", c.StartOffset, c.EndOffset))
		}
		return lines
	case mediadissect.TOCContent:
		var attrs []string
		if c.TopLevel {
			attrs = append(attrs, "top-level")
		}
		if c.Ordered {
			attrs = append(attrs, "ordered")
		}
		return []string{fmt.Sprintf("TOC %q [%s]: %s",
			c.ElementID, strings.Join(attrs, ", "), strings.Join(c.ChildIDs, ", "))}
	case mediadissect.BinaryContent:
		return []string{fmt.Sprintf("Binary: %d bytes", len(c.Data))}
	default:
		return nil
	}
}

func renderBox(w io.Writer, box *mediadissect.Box, indent int, cfg renderConfig) {
	pad := strings.Repeat("    ", indent)

	if cfg.header {
		label := fmt.Sprintf("'%s' (%s)", box.Type, isobmff.Describe(box.Type))
		switch {
		case box.Class == mediadissect.ClassContainer:
			label = containerStyle.Render(label)
		case box.Type == "ftyp" || box.Type == "mdat":
			label = specialStyle.Render(label)
		}
		fmt.Fprintf(w, "%sBox at offset 0x%08X: %s - Size: %d bytes\n",
			pad, box.Offset, label, box.Size)
		if box.Class == mediadissect.ClassBulkLeaf {
			fmt.Fprintf(w, "%s    (payload of %d bytes not buffered)\n", pad, box.DataSize())
		}
	}

	if cfg.data {
		for _, line := range boxLines(box) {
			fmt.Fprintf(w, "%s    %s\n", pad, line)
		}
	}

	if cfg.dump && len(box.Data) > 0 {
		limit := 0
		if box.Type == "covr" || (box.Type == "data" && len(box.Data) > 1024) {
			limit = 128
		}
		fmt.Fprintf(w, "%s    Raw data:\n", pad)
		for _, line := range strings.Split(formatHexdump(box.Data, 0, limit), "\n") {
			fmt.Fprintf(w, "%s    %s\n", pad, line)
		}
	}

	for i := range box.Children {
		renderBox(w, &box.Children[i], indent+1, cfg)
	}
}

// boxLines summarizes a decoded box payload.
func boxLines(box *mediadissect.Box) []string {
	switch c := box.Content.(type) {
	case mediadissect.FileTypeContent:
		return []string{
			fmt.Sprintf("Major brand: %s (minor version %d)", c.MajorBrand, c.MinorVersion),
			fmt.Sprintf("Compatible brands: %s", strings.Join(c.CompatibleBrands, ", ")),
		}
	case mediadissect.MovieHeaderContent:
		return []string{
			fmt.Sprintf("Timescale: %d, Duration: %d (%s)",
				c.Timescale, c.Duration, formatDuration(c.Duration, c.Timescale)),
			fmt.Sprintf("Rate: %.2f, Volume: %.2f", c.Rate, c.Volume),
		}
	case mediadissect.MediaHeaderContent:
		return []string{
			fmt.Sprintf("Timescale: %d, Duration: %d (%s), Language: %s",
				c.Timescale, c.Duration, formatDuration(c.Duration, c.Timescale), c.Language),
		}
	case mediadissect.TrackHeaderContent:
		return []string{
			fmt.Sprintf("Track ID: %d, Duration: %d", c.TrackID, c.Duration),
			fmt.Sprintf("Enabled: %v, Volume: %.2f, Dimensions: %.0fx%.0f",
				c.Enabled(), c.Volume, c.Width, c.Height),
		}
	case mediadissect.HandlerContent:
		line := fmt.Sprintf("Handler: '%s' (%s)", c.HandlerType, isobmff.HandlerTypeName(c.HandlerType))
		if c.Name != "" {
			line += fmt.Sprintf(", Name: %q", c.Name)
		}
		return []string{line}
	case mediadissect.EditListContent:
		return []string{fmt.Sprintf("Entry count: %d", c.EntryCount)}
	case mediadissect.DataReferenceContent:
		return []string{fmt.Sprintf("Entry count: %d", c.EntryCount)}
	case mediadissect.ItunesValueContent:
		return []string{fmt.Sprintf("Value (%s): %s",
			mediadissect.ItunesDataTypeName(c.DataType), c.String())}
	default:
		return nil
	}
}

// formatMS renders milliseconds as hh:mm:ss.mmm.
func formatMS(ms uint32) string {
	d := time.Duration(ms) * time.Millisecond
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}

// formatDuration renders a timescale-based duration as hh:mm:ss.
func formatDuration(units uint64, timescale uint32) string {
	if timescale == 0 {
		return "unknown"
	}
	seconds := units / uint64(timescale)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}
