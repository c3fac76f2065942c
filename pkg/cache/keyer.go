package cache

// Keyer builds cache keys.
type Keyer interface {
	// ProjectionKey identifies the element list for a graph.
	ProjectionKey(graphHash string, opts ProjectionKeyOpts) string
	// ArtifactKey identifies a rendered output for an element document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// ProjectionKeyOpts are the options that change a projection.
type ProjectionKeyOpts struct {
	ConnectorRelation string `json:"connector_relation,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Pinned   bool    `json:"pinned,omitempty"`
	Engine   string  `json:"engine,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ProjectionKey returns "projection:<hash>".
func (DefaultKeyer) ProjectionKey(graphHash string, opts ProjectionKeyOpts) string {
	return hashKey("projection", graphHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

var _ Keyer = DefaultKeyer{}
