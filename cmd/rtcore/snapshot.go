package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/chazu/rtcore/vm"
	"github.com/chazu/rtcore/vm/wire"
)

// sampleGraph builds a small graph touching every encodable kind.
func sampleGraph() *vm.Array {
	point := vm.NewVTable("Point", nil)
	raw := vm.NewRawArray(0, 4)
	for i := uint32(1); i <= 3; i++ {
		binary.LittleEndian.PutUint32(raw.Grow(), i*100)
	}
	greeting := vm.Concat(vm.StringFrom("hello, "), vm.StringFrom("world"))

	root := vm.NewArrayOf(0, "Array<Any>")
	root.Push(greeting)
	root.Push(greeting.Substring(0, 5))
	root.Push(vm.NewByte(8))
	root.Push(vm.NewInt(32))
	root.Push(vm.NewLong(64))
	root.Push(vm.NewFloat(1.5))
	root.Push(vm.NewDouble(2.5))
	root.Push(vm.NewBool(true))
	root.Push(nil)
	root.Push(raw)
	root.Push(vm.NewObject(point))
	root.Push(root)
	return root
}

func writeSample(path string) error {
	data, err := wire.Marshal(sampleGraph())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	log.Infof("wrote %d bytes to %s", len(data), path)
	return nil
}

func inspect(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	snap, err := wire.UnmarshalSnapshot(data)
	if err != nil {
		return err
	}
	// Restoring checks the snapshot is internally consistent.
	if _, err := wire.Restore(snap); err != nil {
		return err
	}
	_, err = io.WriteString(w, snap.Format())
	return err
}
