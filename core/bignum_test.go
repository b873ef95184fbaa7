package core

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestU256AddOverflow(t *testing.T) {
	bud := NewBudget(0, 0, nil)
	maxU256 := U256{Val: new(uint256.Int).SetAllOne()}
	one := NewU256FromUint64(1)
	if _, err := maxU256.Add(one, bud); err == nil {
		t.Fatalf("expected overflow adding 1 to the maximum u256 value")
	}
}

func TestU256MulOverflow(t *testing.T) {
	bud := NewBudget(0, 0, nil)
	maxU256 := U256{Val: new(uint256.Int).SetAllOne()}
	two := NewU256FromUint64(2)
	if _, err := maxU256.Mul(two, bud); err == nil {
		t.Fatalf("expected overflow multiplying the maximum u256 value by 2")
	}
}

func TestU256Cmp(t *testing.T) {
	a := NewU256FromUint64(5)
	b := NewU256FromUint64(9)
	if a.Cmp(b) >= 0 {
		t.Fatalf("expected 5 < 9")
	}
	if b.Cmp(a) <= 0 {
		t.Fatalf("expected 9 > 5")
	}
	if a.Cmp(a) != 0 {
		t.Fatalf("expected equal values to compare as 0")
	}
}

func TestU128AndI128ObjectTags(t *testing.T) {
	if U128{}.objectTag() != ObjU128 {
		t.Fatalf("expected ObjU128 tag")
	}
	if (I128{}).objectTag() != ObjI128 {
		t.Fatalf("expected ObjI128 tag")
	}
}

func TestTimePointAndDurationObjectTags(t *testing.T) {
	if TimePoint(0).objectTag() != ObjTimepoint {
		t.Fatalf("expected ObjTimepoint tag")
	}
	if Duration(0).objectTag() != ObjDuration {
		t.Fatalf("expected ObjDuration tag")
	}
}
