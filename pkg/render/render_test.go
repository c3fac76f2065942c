package render

import (
	"context"
	"reflect"
	"testing"

	"github.com/matzehuels/assetmap/pkg/errors"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []Format
		err  bool
	}{
		{"", []Format{FormatSVG}, false},
		{"svg", []Format{FormatSVG}, false},
		{"SVG, dot,svg", []Format{FormatSVG, FormatDOT}, false},
		{"png,pdf,json", []Format{FormatPNG, FormatPDF, FormatJSON}, false},
		{"gif", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseFormats(tt.in)
		if tt.err {
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ParseFormats(%q) err = %v", tt.in, err)
			}
			continue
		}
		if err != nil || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestFormatContentType(t *testing.T) {
	if FormatSVG.ContentType() != "image/svg+xml" {
		t.Error("svg content type")
	}
	if FormatDOT.Ext() != ".dot" {
		t.Error("dot extension")
	}
}

func TestConvertWithoutConverter(t *testing.T) {
	if HasConverter() {
		t.Skip("rsvg-convert installed")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() = %v, want UNSUPPORTED", err)
	}
}
