package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/assetmap/pkg/errors"
)

// Format is an output artifact type.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatDOT  Format = "dot"
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
)

// AllFormats lists every supported output.
var AllFormats = []Format{FormatSVG, FormatDOT, FormatPDF, FormatPNG, FormatJSON}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	}
	return "text/vnd.graphviz; charset=utf-8"
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ParseFormats parses a comma-separated list, dropping duplicates.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		f := Format(part)
		if !slices.Contains(AllFormats, f) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", part)
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []Format{FormatSVG}, nil
	}
	return out, nil
}
