// Package iterflag implements command line flags that describe a range of
// values to iterate over, and an odometric iterator over several of them.
//
// A range is written as "start:end:step", iterating from start towards end
// (exclusive) in increments of step. "start:end" uses a step of one, and a
// single value does not iterate. A start greater than end iterates
// downwards.
//
//	seeds := iterflag.NewControl(&seed, "seed")
//	counts := iterflag.NewControl(&count, "count")
//	flags.Var(seeds, "seed", "seed range")
//	flags.Var(counts, "count", "sequence length range")
//	it, err := iterflag.NewIterator(seeds, counts)
//
//	$ prng sweep lcg --seed=1:100:10 --count=1000
//
// The iterator visits every combination with the last control varying
// fastest, writing the current values into the bound locations.
package iterflag

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/spf13/pflag"
	"golang.org/x/exp/constraints"
)

// IterControl is a single iterated parameter.
type IterControl interface {
	pflag.Value

	// Key returns the parameter name.
	Key() string
	// Reset moves the parameter back to its start value.
	Reset()
	// AtStart returns true iff the parameter is at its start value.
	AtStart() bool
	// HasNext returns true iff Incr may be called.
	HasNext() bool
	// Incr advances the parameter to its next value.
	Incr()
	// WillIterate returns true iff the range has more than one value.
	WillIterate() bool
	// Value returns the current value.
	Value() string
}

var _ IterControl = (*Control[int])(nil)

// Control iterates an integer location over a range.
type Control[T constraints.Integer] struct {
	loc *T
	key string

	start T
	end   T
	// step is zero for a single value.
	step       T
	descending bool
}

// Key returns the parameter name.
func (c *Control[T]) Key() string {
	return c.key
}

// Reset moves the parameter back to its start value.
func (c *Control[T]) Reset() {
	*c.loc = c.start
}

// AtStart returns true iff the parameter is at its start value.
func (c *Control[T]) AtStart() bool {
	return *c.loc == c.start
}

func (c *Control[T]) hasNextFrom(cur T) bool {
	switch {
	case c.step == 0:
		return false
	case c.descending:
		return cur > c.end && cur-c.end > c.step
	default:
		return cur < c.end && c.end-cur > c.step
	}
}

// HasNext returns true iff the next value is still within the range.
func (c *Control[T]) HasNext() bool {
	return c.hasNextFrom(*c.loc)
}

// Incr advances the parameter. It panics at the end of the range.
func (c *Control[T]) Incr() {
	if !c.HasNext() {
		panic(fmt.Sprintf("iterflag: %s incremented past the end of its range", c.key))
	}
	if c.descending {
		*c.loc -= c.step
	} else {
		*c.loc += c.step
	}
}

// WillIterate returns true iff the range has more than one value.
func (c *Control[T]) WillIterate() bool {
	return c.hasNextFrom(c.start)
}

// Value returns the current value.
func (c *Control[T]) Value() string {
	return fmt.Sprintf("%d", *c.loc)
}

// Count returns the number of values in the range.
func (c *Control[T]) Count() uint64 {
	if c.step == 0 {
		return 1
	}
	var span T
	if c.descending {
		span = c.start - c.end
	} else {
		span = c.end - c.start
	}
	return uint64((span-1)/c.step) + 1
}

// String returns the range in "start:end:step" form.
func (c *Control[T]) String() string {
	if c.step == 0 {
		return fmt.Sprintf("%d", c.start)
	}
	return fmt.Sprintf("%d:%d:%d", c.start, c.end, c.step)
}

// Type returns the flag type name.
func (c *Control[T]) Type() string {
	return "start:end:step"
}

// Set parses a "start:end:step" range and resets the parameter.
func (c *Control[T]) Set(rng string) error {
	parts := strings.Split(rng, ":")
	if len(parts) > 3 {
		return fmt.Errorf("iterflag: %s: malformed range '%s'", c.key, rng)
	}

	vals := make([]T, 0, len(parts))
	for _, p := range parts {
		v, err := parseInteger[T](p)
		if err != nil {
			return fmt.Errorf("iterflag: %s: %w", c.key, err)
		}
		vals = append(vals, v)
	}

	start, end, step := vals[0], vals[0], T(0)
	if len(vals) > 1 {
		end, step = vals[1], 1
	}
	if len(vals) > 2 {
		step = vals[2]
		if step <= 0 {
			return fmt.Errorf("iterflag: %s: step must be positive", c.key)
		}
	}
	if len(vals) > 1 && start == end {
		return fmt.Errorf("iterflag: %s: empty range '%s'", c.key, rng)
	}

	c.start, c.end, c.step = start, end, step
	c.descending = start > end
	c.Reset()
	return nil
}

func parseInteger[T constraints.Integer](s string) (T, error) {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	if zero-1 < zero {
		v, err := strconv.ParseInt(s, 10, bits)
		return T(v), err
	}
	v, err := strconv.ParseUint(s, 10, bits)
	return T(v), err
}

// NewControl binds a control to loc, initially holding the single current
// value of loc.
func NewControl[T constraints.Integer](loc *T, key string) *Control[T] {
	return &Control[T]{
		loc:   loc,
		key:   key,
		start: *loc,
		end:   *loc,
	}
}

// Iterator iterates over the cartesian product of several controls in
// odometric order, the last control being the least significant.
type Iterator struct {
	Control []IterControl
}

// AtStart returns true if all numIters least significant iterating controls
// are at their start value.
func (it *Iterator) AtStart(numIters int) bool {
	count := 0
	for pos := len(it.Control) - 1; pos >= 0 && count < numIters; pos-- {
		if !it.Control[pos].WillIterate() {
			continue
		}
		if !it.Control[pos].AtStart() {
			return false
		}
		count++
	}
	return true
}

// Incr advances the iterator to the next combination. It returns false,
// with every control reset, once all combinations have been visited.
func (it *Iterator) Incr() bool {
	for pos := len(it.Control) - 1; pos >= 0; pos-- {
		ctl := it.Control[pos]
		if !ctl.WillIterate() {
			continue
		}
		if ctl.HasNext() {
			ctl.Incr()
			return true
		}
		ctl.Reset()
	}
	return false
}

// ForEach invokes fn once per combination, starting from the first one.
// Iteration stops at the first error returned by fn.
func (it *Iterator) ForEach(fn func() error) error {
	it.Reset()
	for {
		if err := fn(); err != nil {
			return err
		}
		if !it.Incr() {
			return nil
		}
	}
}

// Reset moves every control back to its start value.
func (it *Iterator) Reset() {
	for _, ctl := range it.Control {
		ctl.Reset()
	}
}

// KeyValues returns "key=value" pairs for the iterating controls.
func (it *Iterator) KeyValues() []string {
	var kv []string
	for _, ctl := range it.Control {
		if ctl.WillIterate() {
			kv = append(kv, ctl.Key()+"="+ctl.Value())
		}
	}
	return kv
}

// NewIterator creates an iterator over the given controls, the first being
// the outermost loop. Keys must be unique.
func NewIterator(controls ...IterControl) (*Iterator, error) {
	seen := make(map[string]struct{})
	for _, ctl := range controls {
		if _, dup := seen[ctl.Key()]; dup {
			return nil, fmt.Errorf("iterflag: duplicate control %s", ctl.Key())
		}
		seen[ctl.Key()] = struct{}{}
	}
	it := &Iterator{Control: append([]IterControl(nil), controls...)}
	it.Reset()
	return it, nil
}
