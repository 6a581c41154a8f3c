package sequence

import (
	"fmt"
	"math/big"
	"math/bits"

	ports "github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence/ports"
)

// Arithmetic defines the value representation of sequence terms.
type Arithmetic[V any] interface {
	// Base returns the value of index 0 and index 1.
	Base() V
	// Add returns a+b or an error if the sum is not representable.
	Add(a, b V) (V, error)
}

// Checked is fixed-width uint64 arithmetic that fails instead of wrapping.
type Checked struct{}

func (Checked) Base() uint64 { return 1 }

func (Checked) Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %d + %d exceeds 64 bits", ports.ErrOverflow, a, b)
	}
	return sum, nil
}

// Big is arbitrary-precision arithmetic. Add always allocates, so cached
// operands are never mutated.
type Big struct{}

func (Big) Base() *big.Int { return big.NewInt(1) }

func (Big) Add(a, b *big.Int) (*big.Int, error) {
	return new(big.Int).Add(a, b), nil
}

var (
	_ Arithmetic[uint64]   = Checked{}
	_ Arithmetic[*big.Int] = Big{}
)
