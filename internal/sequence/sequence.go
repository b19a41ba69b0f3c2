package sequence

import (
	"errors"
	"fmt"
	"math/big"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// MaxUint64Terms is the longest prefix whose every term fits in a uint64.
// F(93) = 12200160415121876738 is the last representable term.
const MaxUint64Terms = 94

// ErrOverflow reports a request for more terms than a fixed-width
// representation can hold exactly.
var ErrOverflow = errors.New("sequence: terms exceed uint64 range")

// Generate returns the first n Fibonacci numbers, starting 0, 1, 1, 2, ...
// A length of zero or less yields an empty, non-nil slice.
//
// Terms past index 93 wrap modulo 2^64; use GenerateChecked or GenerateBig
// when exact values are required for such lengths.
func Generate(n int) []uint64 {
	if n <= 0 {
		return []uint64{}
	}
	seq := make([]uint64, 2, max(n, 2))
	seq[0], seq[1] = 0, 1
	for len(seq) < n {
		seq = append(seq, seq[len(seq)-1]+seq[len(seq)-2])
	}
	return seq[:n]
}

// GenerateChecked is Generate with argument validation: a negative n is a
// ValidationError and a length beyond MaxUint64Terms wraps ErrOverflow.
func GenerateChecked(n int) ([]uint64, error) {
	if n < 0 {
		return nil, apperrors.NewValidationError("n", "must be >= 0, got %d", n)
	}
	if n > MaxUint64Terms {
		return nil, fmt.Errorf("%w: requested %d terms, max %d", ErrOverflow, n, MaxUint64Terms)
	}
	return Generate(n), nil
}

// GenerateBig returns the first n Fibonacci numbers as exact big integers.
// Every element is a distinct allocation owned by the caller.
func GenerateBig(n int) []*big.Int {
	if n <= 0 {
		return []*big.Int{}
	}
	seq := make([]*big.Int, 2, max(n, 2))
	seq[0], seq[1] = big.NewInt(0), big.NewInt(1)
	for len(seq) < n {
		seq = append(seq, new(big.Int).Add(seq[len(seq)-1], seq[len(seq)-2]))
	}
	return seq[:n]
}

// ToBig converts a uint64 sequence to big integers.
func ToBig(seq []uint64) []*big.Int {
	out := make([]*big.Int, len(seq))
	for i, v := range seq {
		out[i] = new(big.Int).SetUint64(v)
	}
	return out
}

// Verify checks that seq is a Fibonacci prefix: 0 and 1 as the first two
// terms and seq[i] == seq[i-1] + seq[i-2] afterwards. An empty sequence is
// valid.
func Verify(seq []*big.Int) error {
	for i, v := range seq {
		if v == nil {
			return fmt.Errorf("sequence: nil term at index %d", i)
		}
		var want *big.Int
		switch i {
		case 0:
			want = big.NewInt(0)
		case 1:
			want = big.NewInt(1)
		default:
			want = new(big.Int).Add(seq[i-1], seq[i-2])
		}
		if v.Cmp(want) != 0 {
			return fmt.Errorf("sequence: term %d is %s, want %s", i, v, want)
		}
	}
	return nil
}

// Equal reports whether two sequences hold the same terms.
func Equal(a, b []*big.Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}
