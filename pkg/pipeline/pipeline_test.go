package pipeline

import (
	"testing"

	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/projection"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateEngine(t *testing.T) {
	tests := []struct {
		engine  string
		wantErr bool
	}{
		{"dot", false},
		{"neato", false},
		{"fdp", false},
		{"", false}, // defaults to dot
		{"circo", true},
	}

	for _, tt := range tests {
		err := ValidateEngine(tt.engine)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Input: "inventory.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Engine != DefaultEngine {
		t.Errorf("Engine = %q, want %q", opts.Engine, DefaultEngine)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.NodeWidth != DefaultNodeWidth || opts.NodeHeight != DefaultNodeHeight {
		t.Errorf("node size = %vx%v, want %vx%v", opts.NodeWidth, opts.NodeHeight, DefaultNodeWidth, DefaultNodeHeight)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"missing input", Options{}, true},
		{"bad format", Options{Input: "g.json", Formats: []string{"gif"}}, true},
		{"bad engine", Options{Input: "g.json", Engine: "circo"}, true},
		{"valid", Options{Input: "g.json", Formats: []string{"dot", "json"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Input: "g.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	opts.Formats = append(opts.Formats, "json")
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 2 {
		t.Errorf("second call changed options: %v", opts.Formats)
	}
}

func TestBoundsFor(t *testing.T) {
	res := projection.Project(sampleGraph())
	explicit := &graph.Layout{}
	explicit.Set("node_4", graph.Rect{MinX: 1000, MinY: 1000, MaxX: 1010, MaxY: 1010})

	bounds := BoundsFor(res, Options{Bounds: explicit})

	t.Run("explicit box wins", func(t *testing.T) {
		r, ok := bounds("node_4")
		if !ok || r.MinX != 1000 {
			t.Errorf("bounds(node_4) = %+v, %v; want explicit box", r, ok)
		}
	})

	t.Run("position hint with default size", func(t *testing.T) {
		r, ok := bounds("node_1")
		if !ok {
			t.Fatal("node_1 has a position hint and should be placed")
		}
		if r.Width() != DefaultNodeWidth || r.Height() != DefaultNodeHeight {
			t.Errorf("box = %vx%v, want %vx%v", r.Width(), r.Height(), DefaultNodeWidth, DefaultNodeHeight)
		}
		if c := r.Center(); c.X != 0 || c.Y != 0 {
			t.Errorf("center = %+v, want origin", c)
		}
	})

	t.Run("unplaced", func(t *testing.T) {
		if _, ok := bounds("node_5"); ok {
			t.Error("node_5 has no hint and no explicit box")
		}
	})
}

func TestLayoutFor(t *testing.T) {
	res := projection.Project(sampleGraph())

	l := LayoutFor(res, Options{})
	if len(l.Boxes) != 3 {
		t.Errorf("boxes = %d, want 3 (node_5 is unplaced)", len(l.Boxes))
	}
	if _, ok := l.Bounds("node_5"); ok {
		t.Error("node_5 should not be exported")
	}
	if r, ok := l.Bounds("node_4"); !ok || r.Center().X != 300 {
		t.Errorf("Bounds(node_4) = %+v, %v", r, ok)
	}
}

func TestNewHullEngine(t *testing.T) {
	res := projection.Project(sampleGraph())

	regions := NewHullEngine(res, Options{}).Render()
	if len(regions) != 1 || regions[0].GroupName != "pci" {
		t.Fatalf("regions = %+v, want one pci region", regions)
	}
	if regions[0].MemberCount != 3 {
		t.Errorf("MemberCount = %d, want 3", regions[0].MemberCount)
	}

	hidden := NewHullEngine(res, Options{Hidden: []string{"pci"}})
	if hidden.Visible("pci") {
		t.Error("pci should start hidden")
	}
	if got := hidden.Render(); len(got) != 0 {
		t.Errorf("hidden group produced %d regions", len(got))
	}
}

// sampleGraph returns A in Prod and Dev, B in Prod and an unplaced C.
func sampleGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "A", Title: "App", Systems: []string{"Prod", "Dev"}, Groups: []string{"pci"}, Position: &graph.Position{X: 0, Y: 0}},
			{ID: "B", Title: "DB", Systems: []string{"Prod"}, Groups: []string{"pci"}, Position: &graph.Position{X: 300, Y: 0}},
			{ID: "C", Title: "Laptop"},
		},
		Edges: []graph.Edge{
			{ID: "e1", SourceID: "A", TargetID: "B", RelationType: "DEPENDS_ON"},
			{ID: "e2", SourceID: "C", TargetID: "A", RelationType: "USES"},
		},
	}
}
