package models

// FlagKind identifies a boolean content signal detected at segmentation time
type FlagKind string

const (
	// FlagRisk marks a unit whose text carries an explicit risk marker
	FlagRisk FlagKind = "risk"
	// FlagNoChange marks a unit explicitly labelled as having no update
	FlagNoChange FlagKind = "no_change"
)

// FlagSet is a set of content flags attached to a unit
type FlagSet map[FlagKind]bool

// Has reports whether the flag is present. Safe on a nil set.
func (f FlagSet) Has(kind FlagKind) bool {
	return f[kind]
}

// Set adds a flag and returns the set, allocating it if needed
func (f FlagSet) Set(kind FlagKind) FlagSet {
	if f == nil {
		f = make(FlagSet)
	}
	f[kind] = true
	return f
}

// Unit is one comparable piece of document content: a title/description pair
// in item mode, or a raw paragraph block in block mode. Units are created
// once per comparison run and never mutated.
type Unit struct {
	// Key is a content-derived stable identifier (normalized title or first line)
	Key string `json:"key"`
	// Title is the display title of the unit
	Title string `json:"title"`
	// Client is the client label extracted from the title, empty in block mode
	Client string `json:"client,omitempty"`
	// Body is the descriptive text compared across versions
	Body string `json:"body"`
	// Anchor is the 0-based paragraph index of the unit in its source document.
	// Only the version being annotated needs real anchors; the other side may
	// carry 0.
	Anchor int `json:"anchor"`
	// Flags records content signals detected during segmentation
	Flags FlagSet `json:"flags,omitempty"`
}
