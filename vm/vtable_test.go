package vm

import (
	"reflect"
	"testing"
)

// ---------------------------------------------------------------------------
// Type identity tests
// ---------------------------------------------------------------------------

func TestBuiltinVTablesDeriveFromAny(t *testing.T) {
	for _, vt := range []*VTable{
		StringVTable, IntVTable, ByteVTable, LongVTable, FloatVTable,
		DoubleVTable, BoolVTable, ArrayVTable, PArrayVTable, ThreadVTable,
	} {
		if vt.Parent() != AnyVTable {
			t.Errorf("%s parent = %v, want Any", vt.Name(), vt.Parent())
		}
	}
	if AnyVTable.Parent() != nil {
		t.Error("Any should have no parent")
	}
}

func TestNewVTableNilParentIsAny(t *testing.T) {
	vt := NewVTable("Point", nil)
	if vt.Parent() != AnyVTable {
		t.Errorf("parent = %v, want Any", vt.Parent())
	}
}

func TestAncestors(t *testing.T) {
	animal := NewVTable("Animal", nil)
	dog := NewVTable("Dog", animal)
	puppy := NewVTable("Puppy", dog)

	want := []string{"Puppy", "Dog", "Animal", "Any"}
	if got := puppy.Ancestors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Ancestors() = %v, want %v", got, want)
	}
}

func TestIsInstance(t *testing.T) {
	animal := NewVTable("Animal", nil)
	dog := NewVTable("Dog", animal)
	cat := NewVTable("Cat", animal)
	rex := NewObject(dog)

	for _, fp := range []string{"Dog", "Animal", "Any"} {
		if !IsInstance(rex, fp) {
			t.Errorf("IsInstance(rex, %q) = false, want true", fp)
		}
	}
	for _, fp := range []string{"Cat", "String", "", "dog"} {
		if IsInstance(rex, fp) {
			t.Errorf("IsInstance(rex, %q) = true, want false", fp)
		}
	}
	if IsInstance(NewObject(cat), "Dog") {
		t.Error("a Cat should not be a Dog")
	}
}

func TestIsInstanceComparesByValue(t *testing.T) {
	// A second vtable with the same name satisfies the check.
	a := NewVTable("Widget", nil)
	b := NewVTable("Widget", nil)
	if !IsInstance(NewObject(a), b.Name()) {
		t.Error("fingerprints with equal names should match")
	}
}

func TestIsInstanceAbsent(t *testing.T) {
	var s *String
	if IsInstance(s, "String") {
		t.Error("absent reference should not be an instance")
	}
	if IsInstance(nil, "Any") {
		t.Error("nil should not be an instance")
	}
}

func TestIsInstanceStampedFingerprint(t *testing.T) {
	arr := NewArrayOf(0, "Array<String>")
	for _, fp := range []string{"Array<String>", "Array", "Any"} {
		if !IsInstance(arr, fp) {
			t.Errorf("IsInstance(arr, %q) = false, want true", fp)
		}
	}
	if IsInstance(arr, "Array<Int>") {
		t.Error("Array<String> should not be an Array<Int>")
	}
}

// ---------------------------------------------------------------------------
// Cast validation tests
// ---------------------------------------------------------------------------

func TestThrowIfInvalidCast(t *testing.T) {
	animal := NewVTable("Animal", nil)
	dog := NewVTable("Dog", animal)
	rex := NewObject(dog)

	// Valid upcasts pass.
	ThrowIfInvalidCast(rex, animal, "Animal")
	ThrowIfInvalidCast(rex, AnyVTable, "Any")

	f := expectFault(t, InvalidCast, func() {
		ThrowIfInvalidCast(rex, StringVTable, "String")
	})
	if f.Message != "Invalid cast from 'Dog' to 'String'!" {
		t.Errorf("message = %q", f.Message)
	}
}

func TestThrowIfInvalidCastAbsentPasses(t *testing.T) {
	var s *String
	ThrowIfInvalidCast(s, IntVTable, "Int")
	ThrowIfInvalidCast(nil, IntVTable, "Int")
}

func TestThrowIfInvalidCastUsesVTableName(t *testing.T) {
	expectFault(t, InvalidCast, func() {
		ThrowIfInvalidCast(NewInt(1), StringVTable, "")
	})
	ThrowIfInvalidCast(NewInt(1), IntVTable, "")
}

func TestHeaderFingerprintDefaults(t *testing.T) {
	h := NewHeaderOf(StringVTable, "")
	if h.Fingerprint() != "String" {
		t.Errorf("fingerprint = %q, want String", h.Fingerprint())
	}
	if FingerprintOf(nil) != "" {
		t.Error("absent fingerprint should be empty")
	}
}
