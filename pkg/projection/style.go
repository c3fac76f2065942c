package projection

// Role classifies an element for styling.
type Role string

const (
	RoleCompound    Role = "compound"
	RoleInstance    Role = "instance"
	RoleMultiSystem Role = "multi_system_instance"
	RoleConnector   Role = "connector"
	RoleEdge        Role = "edge"
	RoleCrossSystem Role = "cross_system_edge"
	RoleHull        Role = "hull"
)

// Shape is a node outline.
type Shape string

const (
	ShapeRect      Shape = "rect"
	ShapeRoundRect Shape = "round_rect"
)

// LineStyle is an edge or border stroke.
type LineStyle string

const (
	LineSolid  LineStyle = "solid"
	LineDashed LineStyle = "dashed"
	LineDotted LineStyle = "dotted"
	// LineDouble marks multi-system instances. Surfaces without double
	// borders draw it solid.
	LineDouble LineStyle = "double"
)

// Style is a surface-neutral style descriptor. Drawing surfaces translate it
// to their own attributes; see pkg/render/nodelink for the Graphviz adapter.
type Style struct {
	Shape      Shape     `json:"shape,omitempty"`
	Line       LineStyle `json:"line,omitempty"`
	Stroke     string    `json:"stroke,omitempty"`
	Fill       string    `json:"fill,omitempty"`
	Opacity    float64   `json:"opacity,omitempty"`
	Directed   bool      `json:"directed,omitempty"`
	Selectable bool      `json:"selectable"`
	Draggable  bool      `json:"draggable"`
}

var defaultStyles = map[Role]Style{
	RoleCompound: {
		Shape: ShapeRoundRect, Line: LineSolid, Stroke: "#666666", Fill: "#F5F5F5",
		Opacity: 1, Selectable: true, Draggable: true,
	},
	RoleInstance: {
		Shape: ShapeRoundRect, Line: LineSolid, Stroke: "#333333", Fill: "#FFFFFF",
		Opacity: 1, Selectable: true, Draggable: true,
	},
	RoleMultiSystem: {
		Shape: ShapeRoundRect, Line: LineDouble, Stroke: "#1F6FB2", Fill: "#FFFFFF",
		Opacity: 1, Selectable: true, Draggable: true,
	},
	RoleConnector: {
		Line: LineDashed, Stroke: "#1F6FB2", Opacity: 0.8,
	},
	RoleEdge: {
		Line: LineSolid, Stroke: "#333333", Opacity: 1, Directed: true, Selectable: true,
	},
	RoleCrossSystem: {
		Line: LineDotted, Stroke: "#B23A48", Opacity: 1, Directed: true, Selectable: true,
	},
	RoleHull: {
		Shape: ShapeRoundRect, Line: LineDashed, Opacity: 0.15,
	},
}

// StyleFor returns the default style descriptor for a role.
func StyleFor(r Role) Style {
	return defaultStyles[r]
}
