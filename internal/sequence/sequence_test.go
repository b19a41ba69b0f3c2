package sequence

import (
	"errors"
	"math/big"
	"slices"
	"testing"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

func TestGenerate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		n    int
		want []uint64
	}{
		{"negative", -5, []uint64{}},
		{"zero", 0, []uint64{}},
		{"one", 1, []uint64{0}},
		{"two", 2, []uint64{0, 1}},
		{"three", 3, []uint64{0, 1, 1}},
		{"ten", 10, []uint64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Generate(tt.n)
			if got == nil {
				t.Fatal("Generate returned nil slice")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Generate(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestGenerate_LastExactTerm(t *testing.T) {
	t.Parallel()
	seq := Generate(MaxUint64Terms)
	if len(seq) != MaxUint64Terms {
		t.Fatalf("len = %d, want %d", len(seq), MaxUint64Terms)
	}
	if got := seq[93]; got != 12200160415121876738 {
		t.Errorf("F(93) = %d, want 12200160415121876738", got)
	}
}

func TestGenerate_ReturnsIndependentSlices(t *testing.T) {
	t.Parallel()
	a := Generate(5)
	b := Generate(5)
	a[4] = 999
	if b[4] != 3 {
		t.Errorf("mutating one result changed another: %v", b)
	}
}

func TestGenerateChecked(t *testing.T) {
	t.Parallel()

	seq, err := GenerateChecked(MaxUint64Terms)
	if err != nil {
		t.Fatalf("GenerateChecked(%d) error: %v", MaxUint64Terms, err)
	}
	if len(seq) != MaxUint64Terms {
		t.Errorf("len = %d, want %d", len(seq), MaxUint64Terms)
	}

	if _, err := GenerateChecked(MaxUint64Terms + 1); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}

	_, err = GenerateChecked(-1)
	var valErr apperrors.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if valErr.Field != "n" {
		t.Errorf("Field = %q, want %q", valErr.Field, "n")
	}
}

func TestGenerateBig(t *testing.T) {
	t.Parallel()
	if got := GenerateBig(0); got == nil || len(got) != 0 {
		t.Errorf("GenerateBig(0) = %v, want empty", got)
	}
	if got := GenerateBig(1); len(got) != 1 || got[0].Sign() != 0 {
		t.Errorf("GenerateBig(1) = %v, want [0]", got)
	}

	seq := GenerateBig(101)
	want, _ := new(big.Int).SetString("354224848179261915075", 10)
	if seq[100].Cmp(want) != 0 {
		t.Errorf("F(100) = %s, want %s", seq[100], want)
	}
	if err := Verify(seq); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestGenerateBig_MatchesGenerate(t *testing.T) {
	t.Parallel()
	if !Equal(GenerateBig(MaxUint64Terms), ToBig(Generate(MaxUint64Terms))) {
		t.Error("big and uint64 sequences differ within the exact range")
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		seq     []*big.Int
		wantErr bool
	}{
		{"empty", []*big.Int{}, false},
		{"valid", ToBig([]uint64{0, 1, 1, 2, 3}), false},
		{"bad seed", ToBig([]uint64{1, 1, 2}), true},
		{"bad second seed", ToBig([]uint64{0, 2, 2}), true},
		{"broken recurrence", ToBig([]uint64{0, 1, 1, 2, 4}), true},
		{"nil term", []*big.Int{big.NewInt(0), nil}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := Verify(tt.seq); (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()
	a := ToBig([]uint64{0, 1, 1})
	if !Equal(a, ToBig([]uint64{0, 1, 1})) {
		t.Error("identical sequences should be equal")
	}
	if Equal(a, ToBig([]uint64{0, 1})) {
		t.Error("different lengths should not be equal")
	}
	if Equal(a, ToBig([]uint64{0, 1, 2})) {
		t.Error("different terms should not be equal")
	}
}
