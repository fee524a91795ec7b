package blueprint

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/astei/blueprintcheck/nbt"
)

const (
	DefaultMinLevel = 1
	DefaultMaxLevel = 5
)

// Checker runs every naming and consistency check over a set of blueprint
// paths. The zero value uses the default level range, one worker per CPU,
// ReadDimensions and a no-op logger.
type Checker struct {
	MinLevel int
	MaxLevel int
	Workers  int
	Logger   *zap.Logger
	Read     func(path string) (Dimensions, error)
}

func (c *Checker) levelRange() (int, int) {
	if c.MinLevel == 0 && c.MaxLevel == 0 {
		return DefaultMinLevel, DefaultMaxLevel
	}
	return c.MinLevel, c.MaxLevel
}

func (c *Checker) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Check validates paths and returns every failure found. Only cancellation
// of ctx stops it early.
func (c *Checker) Check(ctx context.Context, paths []string) (*Report, error) {
	names, failures := CheckNames(paths)
	report := &Report{
		Files:    len(paths),
		Families: len(GroupBy(names, Name.Key)),
	}
	report.add(failures...)

	lo, hi := c.levelRange()
	report.add(CheckLevelRange(names, lo, hi)...)
	report.add(CheckLevelGaps(names)...)
	report.add(CheckLocations(names)...)

	dims, err := c.CheckDimensions(ctx, names)
	if err != nil {
		return nil, err
	}
	report.add(dims...)

	report.sort()
	for _, f := range report.Failures {
		c.logger().Warn("blueprint check failed",
			zap.Stringer("kind", f.Kind),
			zap.String("subject", f.Subject),
			zap.String("message", f.Message))
	}
	return report, nil
}

// CheckNames parses every path, reporting NameFormat for those that do not
// follow <prefix><level>.blueprint.
func CheckNames(paths []string) ([]Name, []Failure) {
	var names []Name
	var failures []Failure
	for _, path := range paths {
		n, err := ParseName(path)
		if err != nil {
			var nameErr *NameFormatError
			msg := err.Error()
			if errors.As(err, &nameErr) {
				msg = nameErr.Reason
			}
			failures = append(failures, Failure{Kind: NameFormat, Subject: path, Message: msg, Err: err})
			continue
		}
		names = append(names, n)
	}
	return names, failures
}

// CheckLevelRange reports every file whose level lies outside [lo, hi].
func CheckLevelRange(names []Name, lo, hi int) []Failure {
	var failures []Failure
	for _, n := range names {
		if n.Level < lo || n.Level > hi {
			failures = append(failures, Failure{
				Kind:    LevelOutOfRange,
				Subject: n.Path,
				Message: fmt.Sprintf("must have a level number in the range %d..%d, found %d", lo, hi, n.Level),
			})
		}
	}
	return failures
}

// CheckLevelGaps reports every family missing a level between 1 and its
// highest level.
func CheckLevelGaps(names []Name) []Failure {
	var failures []Failure
	for _, g := range GroupBy(names, Name.Key) {
		missing := newLevelSet(g.Names).missing()
		if len(missing) == 0 {
			continue
		}
		noun := "level"
		if len(missing) > 1 {
			noun = "levels"
		}
		failures = append(failures, Failure{
			Kind:    LevelGap,
			Subject: g.Key,
			Message: fmt.Sprintf("must contain a blueprint for %s %s", noun, formatLevels(missing)),
		})
	}
	return failures
}

// CheckLocations reports every base name whose files live in more than one
// directory.
func CheckLocations(names []Name) []Failure {
	var failures []Failure
	for _, g := range GroupBy(names, Name.Base) {
		seen := make(map[string]bool)
		var dirs []string
		for _, n := range g.Names {
			if dir := n.Dir(); !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
		if len(dirs) == 1 {
			continue
		}
		sort.Strings(dirs)
		failures = append(failures, Failure{
			Kind:    MultipleLocations,
			Subject: g.Key,
			Message: fmt.Sprintf("found in %d folders but should only be in one: %s", len(dirs), strings.Join(dirs, ", ")),
		})
	}
	return failures
}

type dimensionResult struct {
	dims Dimensions
	err  error
}

// CheckDimensions decodes every file and reports unreadable files plus every
// family whose files disagree on their dimensions. Files are decoded in
// parallel; one file failing does not stop the others.
func (c *Checker) CheckDimensions(ctx context.Context, names []Name) ([]Failure, error) {
	read := c.Read
	if read == nil {
		read = ReadDimensions
	}
	workers := c.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	log := c.logger()

	results := make([]dimensionResult, len(names))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i := range names {
		i := i
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			d, err := read(names[i].Path)
			results[i] = dimensionResult{dims: d, err: err}
			if err != nil {
				log.Debug("could not read blueprint", zap.String("path", names[i].Path), zap.Error(err))
			} else {
				log.Debug("read blueprint", zap.String("path", names[i].Path), zap.Stringer("size", d))
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	byPath := make(map[string]dimensionResult, len(names))
	for i, n := range names {
		byPath[n.Path] = results[i]
	}

	var failures []Failure
	for _, g := range GroupBy(names, Name.Key) {
		var distinct []Dimensions
		firstSeen := make(map[Dimensions]string)
		for _, n := range g.Names {
			res := byPath[n.Path]
			if res.err != nil {
				failures = append(failures, readFailure(n.Path, res.err))
				continue
			}
			if _, ok := firstSeen[res.dims]; !ok {
				firstSeen[res.dims] = n.Path
				distinct = append(distinct, res.dims)
			}
		}
		if len(distinct) <= 1 {
			continue
		}
		found := make([]string, len(distinct))
		for i, d := range distinct {
			found[i] = fmt.Sprintf("%s (%s)", d, firstSeen[d])
		}
		failures = append(failures, Failure{
			Kind:    DimensionMismatch,
			Subject: g.Key,
			Message: "all blueprints need the same dimensions but found: " + strings.Join(found, ", "),
		})
	}
	return failures, nil
}

func readFailure(path string, err error) Failure {
	kind := Malformed
	if errors.Is(err, nbt.ErrNotFound) {
		kind = MissingField
	}
	return Failure{Kind: kind, Subject: path, Message: err.Error(), Err: err}
}
