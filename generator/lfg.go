package generator

import (
	"fmt"

	"github.com/gammazero/deque"

	"github.com/oasisprotocol/prng-suite/generator/api"
)

// Default LFG parameters.
const (
	DefaultLFGSeed      uint64 = 1
	DefaultLFGShortLag         = 3
	DefaultLFGLongLag          = 7
	DefaultLFGOperation        = OpAdd
)

// Constants of the auxiliary LCG used to fill the initial LFG window.
const (
	lfgSeedMultiplier uint64 = 1664525
	lfgSeedIncrement  uint64 = 1013904223
	lfgModulus        uint64 = 1 << 32
)

// Operation is the binary operation combining the two lagged values.
type Operation byte

const (
	// OpAdd is addition modulo 2^32.
	OpAdd Operation = '+'
	// OpSub is subtraction modulo 2^32.
	OpSub Operation = '-'
	// OpMul is multiplication modulo 2^32.
	OpMul Operation = '*'
	// OpXor is bitwise exclusive or.
	OpXor Operation = '^'
)

// String returns the operation symbol.
func (op Operation) String() string {
	return string(op)
}

// ParseOperation parses a single character operation symbol.
func ParseOperation(s string) (Operation, error) {
	if len(s) == 1 {
		switch op := Operation(s[0]); op {
		case OpAdd, OpSub, OpMul, OpXor:
			return op, nil
		}
	}
	return 0, api.InvalidParameter(fmt.Sprintf("invalid operation '%s', use '+', '-', '*', or '^'", s))
}

var _ api.Generator = (*LFG)(nil)

// LFG is a lagged Fibonacci generator: x_n = x_{n-j} op x_{n-k} over a
// window of the last k values, modulo 2^32.
type LFG struct {
	// window holds the last k values, oldest first.
	window *deque.Deque[uint64]

	j  int
	k  int
	op Operation
}

// Name returns the human readable generator name.
func (g *LFG) Name() string {
	return "Lagged Fibonacci Generator"
}

func (g *LFG) combine(a, b uint64) uint64 {
	switch g.op {
	case OpSub:
		if a >= b {
			return a - b
		}
		return lfgModulus - (b - a)
	case OpMul:
		return (a * b) % lfgModulus
	case OpXor:
		return a ^ b
	default:
		return (a + b) % lfgModulus
	}
}

// Generate advances the generator by one step.
func (g *LFG) Generate() (float64, error) {
	xj := g.window.At(g.k - g.j)
	xk := g.window.At(0)
	next := g.combine(xj, xk)

	g.window.PopFront()
	g.window.PushBack(next)

	return float64(next) / float64(lfgModulus), nil
}

// GenerateSequence returns count consecutive values.
func (g *LFG) GenerateSequence(count int) ([]float64, error) {
	return api.Sequence(count, g.Generate)
}

// SetSeed refills the window from seed.
func (g *LFG) SetSeed(seed uint64) error {
	g.window = lfgWindow(seed, g.k)
	return nil
}

func lfgWindow(seed uint64, k int) *deque.Deque[uint64] {
	w := deque.New[uint64](k)
	current := seed
	for i := 0; i < k; i++ {
		current = (lfgSeedMultiplier*current + lfgSeedIncrement) % lfgModulus
		w.PushBack(current)
	}
	return w
}

// NewLFG creates a new lagged Fibonacci generator with lags j < k.
func NewLFG(seed uint64, j, k int, op Operation) (*LFG, error) {
	switch {
	case k <= 0:
		return nil, api.InvalidParameter("k must be positive")
	case j <= 0:
		return nil, api.InvalidParameter("j must be positive")
	case j >= k:
		return nil, api.InvalidParameter("j must be less than k")
	}
	if _, err := ParseOperation(op.String()); err != nil {
		return nil, err
	}

	return &LFG{
		window: lfgWindow(seed, k),
		j:      j,
		k:      k,
		op:     op,
	}, nil
}
