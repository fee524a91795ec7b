package blueprint

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Extension is the file suffix every blueprint carries.
const Extension = ".blueprint"

// MaxLevelNumber bounds the level a file name may carry.
const MaxLevelNumber = 1 << 16

var namePattern = regexp.MustCompile(`^(.*?)(\d+)\.blueprint$`)

// Name is a blueprint path split into its family prefix and level number,
// e.g. "src/huts/builder3.blueprint" -> {"src/huts/builder", 3}.
type Name struct {
	Path   string
	Prefix string
	Level  int
}

// NameFormatError reports a path that does not follow <prefix><level>.blueprint.
type NameFormatError struct {
	Path   string
	Reason string
}

func (e *NameFormatError) Error() string {
	return fmt.Sprintf("blueprint: %s: %s", e.Path, e.Reason)
}

// ParseName splits a blueprint path into its family prefix and level.
func ParseName(path string) (Name, error) {
	m := namePattern.FindStringSubmatch(path)
	if m == nil {
		return Name{}, &NameFormatError{Path: path, Reason: "must end with a level number followed by " + Extension}
	}
	level, err := strconv.Atoi(m[2])
	if err != nil || level > MaxLevelNumber {
		return Name{}, &NameFormatError{Path: path, Reason: "level number " + m[2] + " is out of bounds"}
	}
	return Name{Path: path, Prefix: m[1], Level: level}, nil
}

// Key groups every level of one blueprint family.
func (n Name) Key() string {
	return strings.TrimSpace(n.Prefix)
}

// Base is the family name without its directory.
func (n Name) Base() string {
	return filepath.Base(n.Key())
}

func (n Name) Dir() string {
	return filepath.Dir(n.Path)
}

// Group is every parsed name sharing one key, in path order.
type Group struct {
	Key   string
	Names []Name
}

// GroupBy partitions names by key, preserving first-seen order of keys.
func GroupBy(names []Name, key func(Name) string) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, n := range names {
		k := key(n)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Names = append(groups[i].Names, n)
	}
	return groups
}
