package cache

// Keyer derives cache keys. Implementations must return equal keys for
// equal inputs and distinct keys whenever any option differs.
type Keyer interface {
	// ArtifactKey is the key of one rendered output of a spec.
	ArtifactKey(specHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the inputs besides the spec that change a rendered
// output.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height,omitempty"`
	ScreenWidth  float64 `json:"screen_width,omitempty"`
	ScreenHeight float64 `json:"screen_height,omitempty"`
	Interactive  bool    `json:"interactive,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
	Title        string  `json:"title,omitempty"`
	Version      string  `json:"version,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(specHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", specHash, opts)
}
