package contracts

import "testing"

func TestRoundTo1000(t *testing.T) {
	cases := []struct {
		in   float64
		want Money
	}{
		{0, 0},
		{499, 0},
		{500, 1000},
		{999, 1000},
		{1000, 1000},
		{1499.9, 1000},
		{45_000, 45_000},
		{45_000.4, 45_000},
		{120_000, 120_000},
		{-500, -1000},
		{-499, 0},
	}

	for _, c := range cases {
		if got := RoundTo1000(c.in); got != c.want {
			t.Errorf("RoundTo1000(%f) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestRoundTo1000AlwaysMultiple(t *testing.T) {
	for _, v := range []float64{1, 1234.5, 99_999, 123_456.78, 1_000_000.1} {
		if got := RoundTo1000(v); got%1000 != 0 {
			t.Errorf("RoundTo1000(%f) = %d, not a multiple of 1000", v, got)
		}
	}
}

func TestMoneyAbs(t *testing.T) {
	if Money(-5000).Abs() != 5000 {
		t.Error("Abs(-5000) should be 5000")
	}
	if Money(5000).Abs() != 5000 {
		t.Error("Abs(5000) should be 5000")
	}
}
