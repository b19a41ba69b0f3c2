package orchestration

import (
	"github.com/agbru/fibseq/internal/sequence"
)

// GetGeneratorsToRun resolves an --algo value to the generators to execute.
//
//   - "auto" (or ""): "uint64" when n fits in a uint64 prefix, "big" otherwise.
//   - "all": every registered generator able to serve n exactly, in name order.
//   - anything else: the named generator.
func GetGeneratorsToRun(algo string, n int, factory *sequence.Factory) ([]sequence.Generator, error) {
	switch algo {
	case "", "auto":
		name := sequence.Arbitrary{}.Name()
		if n <= sequence.MaxUint64Terms {
			name = sequence.Iterative{}.Name()
		}
		g, err := factory.Get(name)
		if err != nil {
			return nil, err
		}
		return []sequence.Generator{g}, nil
	case "all":
		var gens []sequence.Generator
		for _, g := range factory.GetAll() {
			if g.Name() == (sequence.Iterative{}).Name() && n > sequence.MaxUint64Terms {
				continue
			}
			gens = append(gens, g)
		}
		return gens, nil
	default:
		g, err := factory.Get(algo)
		if err != nil {
			return nil, err
		}
		return []sequence.Generator{g}, nil
	}
}
