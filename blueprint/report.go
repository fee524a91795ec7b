package blueprint

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// Kind classifies a validation failure.
type Kind int

const (
	NameFormat Kind = iota + 1
	LevelOutOfRange
	LevelGap
	DimensionMismatch
	MultipleLocations
	Malformed
	MissingField
)

var kindNames = map[Kind]string{
	NameFormat:        "NameFormat",
	LevelOutOfRange:   "LevelOutOfRange",
	LevelGap:          "LevelGap",
	DimensionMismatch: "DimensionMismatch",
	MultipleLocations: "MultipleLocations",
	Malformed:         "Malformed",
	MissingField:      "MissingField",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Failure is one violation. Subject is a file path, a family key or a base
// name depending on Kind.
type Failure struct {
	Kind    Kind
	Subject string
	Message string
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s: %s", f.Subject, f.Kind, f.Message)
}

func (f Failure) Unwrap() error {
	return f.Err
}

type Report struct {
	Files    int
	Families int
	Failures []Failure
}

func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

func (r *Report) add(failures ...Failure) {
	r.Failures = append(r.Failures, failures...)
}

// Has reports whether any failure of kind k was recorded.
func (r *Report) Has(k Kind) bool {
	for _, f := range r.Failures {
		if f.Kind == k {
			return true
		}
	}
	return false
}

func (r *Report) sort() {
	sort.SliceStable(r.Failures, func(i, j int) bool {
		a, b := r.Failures[i], r.Failures[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		return a.Kind < b.Kind
	})
}

// WriteText prints one line per failure followed by a summary line.
func (r *Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, f := range r.Failures {
		fmt.Fprintf(bw, "FAIL %s\n", f.Error())
	}
	status := "ok"
	if !r.OK() {
		status = fmt.Sprintf("%d failure(s)", len(r.Failures))
	}
	fmt.Fprintf(bw, "checked %d file(s) in %d group(s): %s\n", r.Files, r.Families, status)
	return bw.Flush()
}
