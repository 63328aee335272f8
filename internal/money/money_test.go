package money

import "testing"

func TestString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		m    Money
		want string
	}{
		{Zero, "0"},
		{Cents(5), "0.05"},
		{Cents(50), "0.50"},
		{New(12, 0), "12"},
		{New(12, 34), "12.34"},
	}
	for _, tc := range tests {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("Money(%d).String() = %q, want %q", uint32(tc.m), got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{in: "0", want: Zero},
		{in: "0.05", want: Cents(5)},
		{in: "0.5", want: Cents(50)},
		{in: "12", want: New(12, 0)},
		{in: " 12.34 ", want: New(12, 34)},
		{in: ".25", want: Cents(25)},
		{in: "", wantErr: true},
		{in: "1.234", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCheckedArithmetic(t *testing.T) {
	t.Parallel()
	a, b := New(1, 0), Cents(50)

	if r, ok := a.Sub(b); !ok || r != Cents(50) {
		t.Errorf("1.00 - 0.50 = %v, %v", r, ok)
	}
	if _, ok := b.Sub(a); ok {
		t.Error("0.50 - 1.00 should not be representable")
	}
	if d := b.Delta(a); d != -50 {
		t.Errorf("Delta = %d, want -50", d)
	}
	if _, ok := FromInt(-1); ok {
		t.Error("FromInt(-1) should fail")
	}
	if m := a.Mul(3); m != New(3, 0) {
		t.Errorf("Mul = %v", m)
	}
	if q, r := New(1, 1).Div(2); q != Cents(50) || r != Cents(1) {
		t.Errorf("Div = %v rem %v", q, r)
	}
}

func TestAddOverflowPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("expected overflow panic")
		}
	}()
	Money(^uint32(0)).Add(1)
}
