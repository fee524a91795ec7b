package blueprint

import (
	"fmt"

	"github.com/astei/blueprintcheck/nbt"
)

// Dimensions is the bounding box a blueprint declares.
type Dimensions struct {
	X, Y, Z int64
}

func (d Dimensions) String() string {
	return fmt.Sprintf("[%d, %d, %d]", d.X, d.Y, d.Z)
}

// ReadDimensions decodes the blueprint at path and returns its size_x,
// size_y and size_z fields. Errors match nbt.ErrMalformed or nbt.ErrNotFound
// when the file is unusable.
func ReadDimensions(path string) (Dimensions, error) {
	root, err := nbt.ReadFile(path)
	if err != nil {
		return Dimensions{}, err
	}
	return DimensionsOf(root)
}

// DimensionsOf extracts the size fields from a decoded root tag.
func DimensionsOf(root nbt.Tag) (Dimensions, error) {
	var d Dimensions
	fields := root.Children()
	for _, f := range []struct {
		name string
		dst  *int64
	}{
		{"size_x", &d.X},
		{"size_y", &d.Y},
		{"size_z", &d.Z},
	} {
		tag, err := nbt.Find(fields, f.name)
		if err != nil {
			return Dimensions{}, err
		}
		v, ok := tag.Int()
		if !ok {
			return Dimensions{}, fmt.Errorf("%w: %q is %s, not an integer", nbt.ErrNotFound, f.name, tag.Type)
		}
		*f.dst = v
	}
	return d, nil
}
