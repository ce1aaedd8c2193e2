package cache

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	Width           int  `json:"width"`
	Height          int  `json:"height"`
	CharWidth       int  `json:"char_width"`
	LineHeight      int  `json:"line_height"`
	InfinityDefault int  `json:"infinity_default"`
	PackedTransport bool `json:"packed_transport"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale"`
	Background string  `json:"background"`
	Outlines   bool    `json:"outlines"`
	Detailed   bool    `json:"detailed"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey addresses the placement tree of a document.
	LayoutKey(documentHash string, opts LayoutKeyOpts) string

	// ArtifactKey addresses one rendered format of a placement tree.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the input hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(documentHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", documentHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
