package types

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"
)

// BalanceBytesLen is the length of the fixed-width store encoding of a Balance.
const BalanceBytesLen = 32

// Balance is an unsigned 256-bit amount of an asset or of liquidity shares.
//
// Balance is a value type: copies never alias and two balances can be compared
// with ==. Arithmetic never wraps; every Checked* helper reports overflow,
// underflow or a zero divisor through its boolean result.
type Balance struct {
	i uint256.Int
}

// NewBalance returns a Balance holding v.
func NewBalance(v uint64) Balance {
	var b Balance
	b.i.SetUint64(v)
	return b
}

// ZeroBalance returns the zero Balance.
func ZeroBalance() Balance {
	return Balance{}
}

// MaxBalance returns the largest representable Balance (2^256 - 1).
func MaxBalance() Balance {
	var b Balance
	b.i.SetAllOne()
	return b
}

// ParseBalance parses a base-10 unsigned integer string.
func ParseBalance(s string) (Balance, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Balance{}, fmt.Errorf("empty balance string")
	}
	if s[0] == '-' || s[0] == '+' {
		return Balance{}, fmt.Errorf("invalid balance %q: sign not allowed", s)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Balance{}, fmt.Errorf("invalid balance %q: %w", s, err)
	}
	return Balance{i: *v}, nil
}

// MustParseBalance is ParseBalance that panics on error. Intended for tests and constants.
func MustParseBalance(s string) Balance {
	b, err := ParseBalance(s)
	if err != nil {
		panic(err)
	}
	return b
}

// BalanceFromBig converts a non-negative big.Int that fits in 256 bits.
func BalanceFromBig(v *big.Int) (Balance, error) {
	if v == nil {
		return Balance{}, fmt.Errorf("nil big.Int")
	}
	if v.Sign() < 0 {
		return Balance{}, fmt.Errorf("negative balance %s", v.String())
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return Balance{}, fmt.Errorf("balance %s exceeds 256 bits", v.String())
	}
	return Balance{i: *u}, nil
}

// BalanceFromBytes decodes the fixed-width big-endian encoding produced by Bytes.
func BalanceFromBytes(bz []byte) (Balance, error) {
	if len(bz) != BalanceBytesLen {
		return Balance{}, fmt.Errorf("invalid balance encoding length %d", len(bz))
	}
	var b Balance
	b.i.SetBytes32(bz)
	return b, nil
}

// Bytes returns the 32-byte big-endian encoding of b.
func (b Balance) Bytes() []byte {
	bz := b.i.Bytes32()
	return bz[:]
}

func (b Balance) IsZero() bool { return b.i.IsZero() }

// Cmp returns -1, 0 or +1 when b is less than, equal to or greater than o.
func (b Balance) Cmp(o Balance) int { return b.i.Cmp(&o.i) }

func (b Balance) Equal(o Balance) bool { return b.i.Eq(&o.i) }
func (b Balance) LT(o Balance) bool    { return b.i.Lt(&o.i) }
func (b Balance) LTE(o Balance) bool   { return !b.i.Gt(&o.i) }
func (b Balance) GT(o Balance) bool    { return b.i.Gt(&o.i) }
func (b Balance) GTE(o Balance) bool   { return !b.i.Lt(&o.i) }

// BitLen returns the number of bits required to represent b.
func (b Balance) BitLen() int { return b.i.BitLen() }

// IsUint64 reports whether b fits in a uint64.
func (b Balance) IsUint64() bool { return b.i.IsUint64() }

// Uint64 returns the low 64 bits of b.
func (b Balance) Uint64() uint64 { return b.i.Uint64() }

// BigInt returns b as a newly allocated big.Int.
func (b Balance) BigInt() *big.Int { return b.i.ToBig() }

// ToInt converts b into an SDK integer.
func (b Balance) ToInt() math.Int { return math.NewIntFromBigInt(b.i.ToBig()) }

// Float64 returns an approximation of b, for metrics only.
func (b Balance) Float64() float64 {
	f, _ := new(big.Float).SetInt(b.i.ToBig()).Float64()
	return f
}

func (b Balance) String() string { return b.i.Dec() }

// CheckedAdd returns b + o, or false if the sum exceeds MaxBalance.
func (b Balance) CheckedAdd(o Balance) (Balance, bool) {
	var z Balance
	if _, overflow := z.i.AddOverflow(&b.i, &o.i); overflow {
		return Balance{}, false
	}
	return z, true
}

// CheckedSub returns b - o, or false if o is greater than b.
func (b Balance) CheckedSub(o Balance) (Balance, bool) {
	var z Balance
	if _, underflow := z.i.SubOverflow(&b.i, &o.i); underflow {
		return Balance{}, false
	}
	return z, true
}

// CheckedMul returns b * o, or false if the product exceeds MaxBalance.
func (b Balance) CheckedMul(o Balance) (Balance, bool) {
	var z Balance
	if _, overflow := z.i.MulOverflow(&b.i, &o.i); overflow {
		return Balance{}, false
	}
	return z, true
}

// CheckedQuo returns floor(b / o), or false if o is zero.
func (b Balance) CheckedQuo(o Balance) (Balance, bool) {
	if o.IsZero() {
		return Balance{}, false
	}
	var z Balance
	z.i.Div(&b.i, &o.i)
	return z, true
}

// CheckedRem returns b mod o, or false if o is zero.
func (b Balance) CheckedRem(o Balance) (Balance, bool) {
	if o.IsZero() {
		return Balance{}, false
	}
	var z Balance
	z.i.Mod(&b.i, &o.i)
	return z, true
}

// Sqrt returns floor(sqrt(b)).
func (b Balance) Sqrt() Balance {
	var z Balance
	z.i.Sqrt(&b.i)
	return z
}

// MinBalance returns the smaller of a and b.
func MinBalance(a, b Balance) Balance {
	if a.LT(b) {
		return a
	}
	return b
}

// MarshalJSON encodes b as a quoted decimal string, like math.Int.
func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts a quoted decimal string.
func (b *Balance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("balance must be a decimal string: %w", err)
	}
	v, err := ParseBalance(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}
