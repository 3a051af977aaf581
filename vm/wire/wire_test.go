package wire

import (
	"context"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/chazu/rtcore/vm"
)

func roundTrip(t *testing.T, obj vm.Object) vm.Object {
	t.Helper()
	data, err := Marshal(obj)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return got
}

func TestString_CBORRoundTrip(t *testing.T) {
	s := vm.NewStringOf("Path")
	s.Load([]byte("/usr/bin"))

	got, ok := roundTrip(t, s).(*vm.String)
	if !ok {
		t.Fatal("expected a *vm.String")
	}
	if got == s {
		t.Error("restore should allocate a fresh object")
	}
	if got.String() != "/usr/bin" {
		t.Errorf("content = %q, want /usr/bin", got.String())
	}
	if vm.FingerprintOf(got) != "Path" {
		t.Errorf("fingerprint = %q, want Path", vm.FingerprintOf(got))
	}
}

func TestBoxed_CBORRoundTrip(t *testing.T) {
	arr := vm.ArrayOf(
		vm.NewByte(-3),
		vm.NewInt(-70000),
		vm.NewLong(1<<50),
		vm.NewFloat(0.5),
		vm.NewDouble(-1e300),
		vm.NewBool(true),
		vm.NewBool(false),
	)
	got := roundTrip(t, arr).(*vm.Array)
	if got.GetLength() != 7 {
		t.Fatalf("length = %d, want 7", got.GetLength())
	}
	if v := got.GetElement(0).(*vm.Byte).Value(); v != -3 {
		t.Errorf("Byte = %d", v)
	}
	if v := got.GetElement(1).(*vm.Int).Value(); v != -70000 {
		t.Errorf("Int = %d", v)
	}
	if v := got.GetElement(2).(*vm.Long).Value(); v != 1<<50 {
		t.Errorf("Long = %d", v)
	}
	if v := got.GetElement(3).(*vm.Float).Value(); v != 0.5 {
		t.Errorf("Float = %v", v)
	}
	if v := got.GetElement(4).(*vm.Double).Value(); v != -1e300 {
		t.Errorf("Double = %v", v)
	}
	if !got.GetElement(5).(*vm.Bool).Value() || got.GetElement(6).(*vm.Bool).Value() {
		t.Error("Bool values not preserved")
	}
}

func TestArray_AbsentSlotsAndSharing(t *testing.T) {
	shared := vm.StringFrom("twice")
	arr := vm.NewArrayOf(3, "Array<String>")
	arr.SetElement(0, shared)
	arr.SetElement(2, shared)

	got := roundTrip(t, arr).(*vm.Array)
	if vm.FingerprintOf(got) != "Array<String>" {
		t.Errorf("fingerprint = %q", vm.FingerprintOf(got))
	}
	if !vm.IsAbsent(got.GetElement(1)) {
		t.Error("absent slot should stay absent")
	}
	if got.GetElement(0) != got.GetElement(2) {
		t.Error("shared referent should be restored once")
	}
}

func TestArray_Cycle(t *testing.T) {
	arr := vm.NewArray(1)
	arr.SetElement(0, arr)

	got := roundTrip(t, arr).(*vm.Array)
	if got.GetElement(0) != vm.Object(got) {
		t.Error("self reference not restored")
	}
}

func TestRawArray_CBORRoundTrip(t *testing.T) {
	p := vm.NewRawArray(0, 4)
	for i := uint32(0); i < 9; i++ {
		binary.BigEndian.PutUint32(p.Grow(), i*i)
	}
	got := roundTrip(t, p).(*vm.RawArray)
	if got.GetLength() != 9 || got.ElementSize() != 4 {
		t.Fatalf("length/elemSize = %d/%d", got.GetLength(), got.ElementSize())
	}
	for i := 0; i < 9; i++ {
		if v := binary.BigEndian.Uint32(got.GetElementPtr(i)); v != uint32(i*i) {
			t.Errorf("element %d = %d", i, v)
		}
	}
}

func TestObject_VTableChainRestored(t *testing.T) {
	animal := vm.NewVTable("Animal", nil)
	dog := vm.NewVTable("Dog", animal)
	arr := vm.ArrayOf(vm.NewObject(dog), vm.NewObject(dog))

	got := roundTrip(t, arr).(*vm.Array)
	a, b := got.GetElement(0), got.GetElement(1)
	if !vm.IsInstance(a, "Animal") || !vm.IsInstance(a, "Dog") {
		t.Error("restored object lost its ancestry")
	}
	if a.Header().VTable() != b.Header().VTable() {
		t.Error("objects of one type should share a restored vtable")
	}
}

func TestCapture_Absent(t *testing.T) {
	snap, err := Capture(nil)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Root != Absent {
		t.Errorf("root = %d, want Absent", snap.Root)
	}
	obj, err := Restore(snap)
	if err != nil || obj != nil {
		t.Errorf("Restore = %v, %v; want nil, nil", obj, err)
	}
}

func TestCapture_ThreadUnsupported(t *testing.T) {
	th := vm.NewThread(func(context.Context, *vm.Array) {}, nil)
	_, err := Capture(vm.ArrayOf(th))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestUnmarshal_Errors(t *testing.T) {
	if _, err := Unmarshal([]byte{0xff, 0x00}); err == nil {
		t.Error("garbage should not decode")
	}

	bad, err := MarshalSnapshot(&Snapshot{Version: 99})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal(bad); err == nil {
		t.Error("unknown version should be rejected")
	}

	dangling, err := MarshalSnapshot(&Snapshot{
		Version: SnapshotVersion,
		Nodes:   []Node{{Kind: NodeArray, Refs: []int{5}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal(dangling); err == nil {
		t.Error("dangling reference should be rejected")
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	build := func() vm.Object {
		return vm.ArrayOf(vm.StringFrom("a"), vm.NewInt(1), nil)
	}
	a, err := Marshal(build())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Marshal(build())
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("canonical encoding should be deterministic")
	}
}

func TestSnapshot_Format(t *testing.T) {
	snap, err := Capture(vm.ArrayOf(vm.StringFrom("hi"), vm.NewBool(true)))
	if err != nil {
		t.Fatal(err)
	}
	out := snap.Format()
	for _, want := range []string{"nodes=3", `String "String" "hi"`, "Bool \"Bool\" true", "[1 2]"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}
