package nbt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented, human readable rendering of t.
func Dump(w io.Writer, t Tag) error {
	bw := bufio.NewWriter(w)
	dumpTag(bw, t, 0)
	return bw.Flush()
}

func dumpTag(w *bufio.Writer, t Tag, indent int) {
	pad := strings.Repeat("  ", indent)
	name := ""
	if t.Name != "" {
		name = fmt.Sprintf("(%q)", t.Name)
	}

	switch v := t.Value.(type) {
	case []Tag:
		kind := "entries"
		if t.Type == TagList {
			kind = t.Elem.String()
		}
		fmt.Fprintf(w, "%s%s%s: %d %s\n", pad, t.Type, name, len(v), kind)
		for _, child := range v {
			dumpTag(w, child, indent+1)
		}
	case []int8:
		fmt.Fprintf(w, "%s%s%s: [%d bytes]\n", pad, t.Type, name, len(v))
	case []int32:
		fmt.Fprintf(w, "%s%s%s: %v\n", pad, t.Type, name, v)
	case []int64:
		fmt.Fprintf(w, "%s%s%s: %v\n", pad, t.Type, name, v)
	case string:
		fmt.Fprintf(w, "%s%s%s: %q\n", pad, t.Type, name, v)
	default:
		fmt.Fprintf(w, "%s%s%s: %v\n", pad, t.Type, name, v)
	}
}
