package blueprint

import (
	"strconv"
	"strings"

	"github.com/willf/bitset"
)

// levelSet records which levels of a family are present.
type levelSet struct {
	set *bitset.BitSet
	max int
}

func newLevelSet(names []Name) *levelSet {
	s := &levelSet{}
	for _, n := range names {
		if n.Level > s.max {
			s.max = n.Level
		}
	}
	s.set = bitset.New(uint(s.max) + 1)
	for _, n := range names {
		s.set.Set(uint(n.Level))
	}
	return s
}

// missing lists every level in 1..max that has no file.
func (s *levelSet) missing() []int {
	var out []int
	for i, ok := s.set.NextClear(1); ok && int(i) < s.max; i, ok = s.set.NextClear(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// formatLevels renders sorted levels as compact ranges, e.g. "2-4, 7".
func formatLevels(levels []int) string {
	var parts []string
	for i := 0; i < len(levels); {
		j := i
		for j+1 < len(levels) && levels[j+1] == levels[j]+1 {
			j++
		}
		part := strconv.Itoa(levels[i])
		if j > i {
			part += "-" + strconv.Itoa(levels[j])
		}
		parts = append(parts, part)
		i = j + 1
	}
	return strings.Join(parts, ", ")
}
