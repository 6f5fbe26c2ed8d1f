package clock

import (
	"testing"
	"time"
)

func TestRealNow(t *testing.T) {
	before := time.Now()
	got := Real{}.Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Fatalf("Real.Now()=%v not within [%v,%v]", got, before, after)
	}
}

func TestFixedNow(t *testing.T) {
	fixed := time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)
	clk := Fixed{T: fixed}
	if !clk.Now().Equal(fixed) || !clk.Now().Equal(fixed) {
		t.Fatalf("Fixed.Now() should always return %v", fixed)
	}
}

func TestFuncNow(t *testing.T) {
	calls := 0
	clk := Func(func() time.Time {
		calls++
		return time.Unix(int64(calls), 0)
	})
	if clk.Now().Unix() != 1 || clk.Now().Unix() != 2 {
		t.Fatalf("Func should delegate each call")
	}
}
