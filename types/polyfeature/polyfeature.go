package polyfeature

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// PolyFeature is one (multi)polygon feature of a vector dataset.
// It's an alias of geojson.Feature, with definite polygonal geometry
// and an integer identifier.
// The identifier lives either in a designated integer property or,
// failing that, in the feature's positional (file order) id.
// Everything else about the feature rides along untouched; the splitter
// only ever looks at the geometry.
type PolyFeature geojson.Feature

var (
	ErrNoGeometry          = errors.New("feature has no geometry")
	ErrUnsupportedGeometry = errors.New("feature geometry is not polygonal")
	ErrRingNotClosed       = errors.New("ring is not closed")
	ErrRingTooShort        = errors.New("ring must have at least four points")
)

// New creates and initializes a GeoJSON feature given the required attributes.
func New(geometry orb.Geometry) *PolyFeature {
	return &PolyFeature{
		Type:       "Feature",
		Geometry:   geometry,
		Properties: make(map[string]interface{}),
	}
}

// NewPiece wraps one output piece with the identifier it inherits
// from its source feature.
func NewPiece(piece orb.Polygon, idProperty string, id int) *PolyFeature {
	f := New(piece)
	f.Properties[idProperty] = id
	return f
}

// FeatureID returns the feature's integer identifier from the named property,
// falling back to the given positional id when the property is missing
// or not a number.
func (f *PolyFeature) FeatureID(property string, fallback int) int {
	if f.Properties != nil {
		switch v := f.Properties[property].(type) {
		case int:
			return v
		case float64:
			return int(v)
		}
	}
	switch v := f.ID.(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return fallback
}

// IsEmpty reports whether the feature carries no coordinates at all.
func (f *PolyFeature) IsEmpty() bool {
	switch g := f.Geometry.(type) {
	case nil:
		return true
	case orb.Polygon:
		return len(g) == 0 || len(g[0]) == 0
	case orb.MultiPolygon:
		for _, p := range g {
			if len(p) > 0 && len(p[0]) > 0 {
				return false
			}
		}
		return true
	}
	return false
}

// Validate checks the feature's rings: polygonal geometry, at least
// four points per ring, first point equal to last.
func (f *PolyFeature) Validate() error {
	switch g := f.Geometry.(type) {
	case nil:
		return ErrNoGeometry
	case orb.Polygon:
		return validatePolygon(g)
	case orb.MultiPolygon:
		for i, p := range g {
			if err := validatePolygon(p); err != nil {
				return fmt.Errorf("member %d: %w", i, err)
			}
		}
		return nil
	}
	return ErrUnsupportedGeometry
}

func validatePolygon(p orb.Polygon) error {
	if len(p) == 0 {
		return ErrNoGeometry
	}
	for i, ring := range p {
		if len(ring) < 4 {
			return fmt.Errorf("ring %d: %w", i, ErrRingTooShort)
		}
		if !ring.Closed() {
			return fmt.Errorf("ring %d: %w", i, ErrRingNotClosed)
		}
	}
	return nil
}

// Copy returns a deep copy of the feature.
func (f *PolyFeature) Copy() *PolyFeature {
	cp := New(nil)
	if f.Geometry != nil {
		cp.Geometry = orb.Clone(f.Geometry)
	}
	cp.ID = f.ID
	for k, v := range f.Properties {
		cp.Properties[k] = v
	}
	return cp
}

// MarshalJSON implements the json.Marshaler interface.
func (f PolyFeature) MarshalJSON() ([]byte, error) {
	gf := geojson.Feature(f)
	return gf.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *PolyFeature) UnmarshalJSON(data []byte) error {
	gf, err := geojson.UnmarshalFeature(data)
	if err != nil {
		return err
	}
	*f = *(*PolyFeature)(gf)
	return nil
}
