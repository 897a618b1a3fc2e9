package contracts

import "math"

// Money is an amount in yen. Allocations and holdings are always multiples of
// 1,000 (the smallest tradable increment); deltas may be negative.
type Money int64

// RoundTo1000 rounds to the nearest multiple of 1,000, ties away from zero.
// Every monetary derivation from a fractional multiplication goes through
// this to keep downstream arithmetic exact.
func RoundTo1000(v float64) Money {
	return Money(math.Round(v/1000.0)) * 1000
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}
