//go:build gmp

package sequence

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// GMP produces exact terms with GNU MP integers. It is only built with the
// gmp tag because it needs cgo and libgmp.
type GMP struct{}

// Name returns "gmp".
func (GMP) Name() string { return "gmp" }

// Generate implements Generator.
func (GMP) Generate(ctx context.Context, n int) ([]*big.Int, error) {
	if n < 0 {
		return nil, apperrors.NewValidationError("n", "must be >= 0, got %d", n)
	}
	out := make([]*big.Int, 0, n)
	a, b := gmp.NewInt(0), gmp.NewInt(1)
	for i := 0; i < n; i++ {
		if i%CancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		// Terms are never negative, so the magnitude bytes are the value.
		out = append(out, new(big.Int).SetBytes(a.Bytes()))
		a, b = b, new(gmp.Int).Add(a, b)
	}
	return out, nil
}

func registerOptional(f *Factory) {
	f.Register(GMP{})
}
