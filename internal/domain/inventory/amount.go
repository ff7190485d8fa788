package inventory

import (
	"fmt"
	"math"
	"math/big"
)

// Scale is the number of raw units per whole item or whole litre.
// Quantities are fixed-point with six decimal places, matching the host.
const Scale = 1_000_000

// MaxItems is the largest whole-item count an Amount can hold.
const MaxItems = math.MaxInt64 / Scale

// Amount is an exact fixed-point item quantity.
type Amount int64

// Volume is an exact fixed-point volume in litres.
type Volume int64

// Items returns an amount of whole items. n must lie within ±MaxItems.
func Items(n int64) Amount {
	return Amount(n * Scale)
}

// CheckedItems is Items for untrusted input; ok is false when n is out of range.
func CheckedItems(n int64) (Amount, bool) {
	if n > MaxItems || n < -MaxItems {
		return 0, false
	}
	return Items(n), true
}

// CheckedAdd returns a+b; ok is false when the sum overflows.
func (a Amount) CheckedAdd(b Amount) (Amount, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// AmountFromFloat converts a boundary float (e.g. a fixture value) to an Amount.
func AmountFromFloat(f float64) Amount {
	return Amount(math.Round(f * Scale))
}

// Raw returns the underlying scaled integer.
func (a Amount) Raw() int64 { return int64(a) }

// Whole returns the number of complete items, truncating any fraction.
func (a Amount) Whole() int64 { return int64(a) / Scale }

// CeilWhole returns the number of items rounded up to the next whole item.
func (a Amount) CeilWhole() int64 {
	if a <= 0 {
		return int64(a) / Scale
	}
	return (int64(a) + Scale - 1) / Scale
}

// Float64 is for ratios and display only; never feed it back into quantities.
func (a Amount) Float64() float64 { return float64(a) / Scale }

// IsPositive reports whether the amount is greater than zero.
func (a Amount) IsPositive() bool { return a > 0 }

// DivN splits the amount into n equal shares, truncating the remainder.
func (a Amount) DivN(n int) Amount {
	if n <= 0 {
		return 0
	}
	return a / Amount(n)
}

// Min returns the smaller of two amounts.
func (a Amount) Min(b Amount) Amount {
	if b < a {
		return b
	}
	return a
}

func (a Amount) String() string {
	return formatFixed(int64(a))
}

// Litres returns a volume of whole litres.
func Litres(n int64) Volume {
	return Volume(n * Scale)
}

// VolumeFromFloat converts a boundary float in litres to a Volume.
func VolumeFromFloat(f float64) Volume {
	return Volume(math.Round(f * Scale))
}

// Raw returns the underlying scaled integer.
func (v Volume) Raw() int64 { return int64(v) }

// Min returns the smaller of two volumes.
func (v Volume) Min(w Volume) Volume {
	if w < v {
		return w
	}
	return v
}

func (v Volume) String() string {
	return formatFixed(int64(v)) + " L"
}

// VolumeOf returns the volume taken by an amount of items of the given
// per-item volume.
func VolumeOf(amount Amount, perItem Volume) Volume {
	return Volume(mulDiv(int64(amount), int64(perItem), Scale))
}

// AmountFor returns how many items of the given per-item volume fit in the
// volume, rounded down. A zero per-item volume yields zero.
func AmountFor(volume Volume, perItem Volume) Amount {
	if perItem <= 0 {
		return 0
	}
	return Amount(mulDiv(int64(volume), Scale, int64(perItem)))
}

// mulDiv computes a*b/c without intermediate overflow, truncating toward zero.
func mulDiv(a, b, c int64) int64 {
	r := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	r.Quo(r, big.NewInt(c))
	if !r.IsInt64() {
		if r.Sign() > 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return r.Int64()
}

func formatFixed(raw int64) string {
	sign := ""
	if raw < 0 {
		sign = "-"
		raw = -raw
	}
	whole := raw / Scale
	frac := raw % Scale
	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}
	s := fmt.Sprintf("%s%d.%06d", sign, whole, frac)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	return s
}
