// Package rational implements the small fixed-point fraction type used to
// carry timestamp clock domains (time bases) through the demuxer.
//
// Matroska/EBML do not define a rational-number wire type; the container
// only ever encodes integers and the SegmentInfo's nanosecond timestamp
// scale. Rational exists purely on the Go side to rescale timestamps
// between clock domains (container nanoseconds, sample-rate domains,
// codec-declared packet time bases) without losing precision to repeated
// floating point conversions.
package rational

import "math/big"

// Rational is a reduced fraction Num/Den. Den is always > 0; New and
// Reduce normalize the sign into Num.
type Rational struct {
	Num int64
	Den int64
}

// New builds a Rational and reduces it to lowest terms.
func New(num, den int64) Rational {
	return Rational{Num: num, Den: den}.Reduce()
}

// Zero is the additive identity, 0/1.
var Zero = Rational{Num: 0, Den: 1}

// Nanos returns the time base of one nanosecond (1/1_000_000_000), the
// domain track time bases start in. TimestampScale is itself a count of
// nanoseconds per tick; the usual 1,000,000 reduces to 1/1000, not to this.
func Nanos() Rational {
	return Rational{Num: 1, Den: 1_000_000_000}
}

// Inverse returns 1/den, the domain of a sample-rate clock (e.g. 1/48000).
func Inverse(den uint32) Rational {
	if den == 0 {
		return Zero
	}
	return Rational{Num: 1, Den: int64(den)}
}

// Reduce divides Num and Den by their GCD and normalizes the sign so Den
// is always positive. A zero denominator reduces to Zero to avoid
// propagating a divide-by-zero into downstream rescales.
func (r Rational) Reduce() Rational {
	if r.Den == 0 {
		return Zero
	}
	if r.Den < 0 {
		r.Num, r.Den = -r.Num, -r.Den
	}
	if r.Num == 0 {
		return Rational{Num: 0, Den: 1}
	}
	g := gcd(absInt64(r.Num), r.Den)
	if g == 0 {
		return r
	}
	return Rational{Num: r.Num / g, Den: r.Den / g}
}

// Float64 returns the fraction as a float64.
func (r Rational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// IsZero reports whether the fraction is exactly 0.
func (r Rational) IsZero() bool {
	return r.Num == 0
}

// Rescale converts a value expressed in time base `from` into the
// equivalent value in time base `r` (the receiver is the destination):
//
//	result = value * (from.Num * r.Den) / (from.Den * r.Num)
//
// Intermediate arithmetic runs on big.Int so large timestamps (container
// nanosecond counts) don't overflow int64 before the final division.
func (r Rational) Rescale(value int64, from Rational) int64 {
	if from.Den == 0 || r.Num == 0 {
		return 0
	}
	num := big.NewInt(value)
	num.Mul(num, big.NewInt(from.Num))
	num.Mul(num, big.NewInt(r.Den))

	den := big.NewInt(from.Den)
	den.Mul(den, big.NewInt(r.Num))

	if den.Sign() == 0 {
		return 0
	}
	q := new(big.Int).Quo(num, den)
	return q.Int64()
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
