package vm

import (
	"testing"
)

func TestBoxedValues(t *testing.T) {
	if v := NewByte(-7).Value(); v != -7 {
		t.Errorf("Byte = %d, want -7", v)
	}
	if v := NewInt(42).Value(); v != 42 {
		t.Errorf("Int = %d, want 42", v)
	}
	if v := NewLong(1 << 40).Value(); v != 1<<40 {
		t.Errorf("Long = %d, want %d", v, int64(1<<40))
	}
	if v := NewFloat(1.5).Value(); v != 1.5 {
		t.Errorf("Float = %v, want 1.5", v)
	}
	if v := NewDouble(2.25).Value(); v != 2.25 {
		t.Errorf("Double = %v, want 2.25", v)
	}
	if v := NewBool(true).Value(); !v {
		t.Error("Bool = false, want true")
	}
}

func TestBoxedAbsentYieldsZero(t *testing.T) {
	var (
		b *Byte
		i *Int
		l *Long
		f *Float
		d *Double
		z *Bool
	)
	if b.Value() != 0 || i.Value() != 0 || l.Value() != 0 {
		t.Error("absent integer boxes should yield 0")
	}
	if f.Value() != 0.0 || d.Value() != 0.0 {
		t.Error("absent float boxes should yield 0.0")
	}
	if z.Value() {
		t.Error("absent Bool should yield false")
	}
	if _, ok := i.Get(); ok {
		t.Error("Get on absent box should report false")
	}
}

func TestBoxedVTables(t *testing.T) {
	tests := []struct {
		obj  Object
		want string
	}{
		{NewByte(1), "Byte"},
		{NewInt(1), "Int"},
		{NewLong(1), "Long"},
		{NewFloat(1), "Float"},
		{NewDouble(1), "Double"},
		{NewBool(true), "Bool"},
	}
	for _, tt := range tests {
		h := tt.obj.Header()
		if h.Fingerprint() != tt.want {
			t.Errorf("fingerprint = %q, want %q", h.Fingerprint(), tt.want)
		}
		if h.VTable().Parent() != AnyVTable {
			t.Errorf("%s parent should be Any", tt.want)
		}
		if !IsInstance(tt.obj, "Any") {
			t.Errorf("%s should be an Any", tt.want)
		}
	}
}

func TestBoxedAbsentIsAbsent(t *testing.T) {
	var i *Int
	if !IsAbsent(i) {
		t.Error("typed nil box should be absent")
	}
}
