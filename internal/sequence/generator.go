package sequence

import (
	"context"
	"math/big"
	"sort"
	"sync"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// CancelCheckInterval is how many terms the arbitrary-precision generators
// produce between context checks.
const CancelCheckInterval = 1024

// Generator is a named implementation of prefix generation.
type Generator interface {
	// Name returns the short registry name (e.g. "big").
	Name() string
	// Generate returns the first n terms. It fails only on invalid input,
	// overflow, or when ctx is done.
	Generate(ctx context.Context, n int) ([]*big.Int, error)
}

// Iterative produces terms with fixed-width uint64 arithmetic and refuses
// lengths it cannot represent exactly.
type Iterative struct{}

// Name returns "uint64".
func (Iterative) Name() string { return "uint64" }

// Generate implements Generator.
func (Iterative) Generate(ctx context.Context, n int) ([]*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seq, err := GenerateChecked(n)
	if err != nil {
		return nil, err
	}
	return ToBig(seq), nil
}

// Arbitrary produces exact terms of any length using math/big.
type Arbitrary struct{}

// Name returns "big".
func (Arbitrary) Name() string { return "big" }

// Generate implements Generator.
func (Arbitrary) Generate(ctx context.Context, n int) ([]*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewValidationError("n", "must be >= 0, got %d", n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= 2 {
		return GenerateBig(n), nil
	}
	seq := make([]*big.Int, 2, n)
	seq[0], seq[1] = big.NewInt(0), big.NewInt(1)
	for len(seq) < n {
		if len(seq)%CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		seq = append(seq, new(big.Int).Add(seq[len(seq)-1], seq[len(seq)-2]))
	}
	return seq, nil
}

// Factory is a thread-safe registry of generators keyed by name.
type Factory struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

// NewFactory returns an empty registry.
func NewFactory() *Factory {
	return &Factory{generators: make(map[string]Generator)}
}

// NewDefaultFactory returns a registry holding every generator compiled into
// the binary.
func NewDefaultFactory() *Factory {
	f := NewFactory()
	f.Register(Iterative{})
	f.Register(Arbitrary{})
	registerOptional(f)
	return f
}

// Register adds g, replacing any generator of the same name.
func (f *Factory) Register(g Generator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generators[g.Name()] = g
}

// Get returns the generator registered under name.
func (f *Factory) Get(name string) (Generator, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	g, ok := f.generators[name]
	if !ok {
		return nil, apperrors.NewConfigError("unknown generator %q (available: %v)", name, f.listLocked())
	}
	return g, nil
}

// List returns the registered names in sorted order.
func (f *Factory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listLocked()
}

func (f *Factory) listLocked() []string {
	names := make([]string, 0, len(f.generators))
	for name := range f.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns every registered generator ordered by name.
func (f *Factory) GetAll() []Generator {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := f.listLocked()
	out := make([]Generator, 0, len(names))
	for _, name := range names {
		out = append(out, f.generators[name])
	}
	return out
}
