package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/rtcore/vm"
)

// smokeItems is how many strings each smoke worker builds.
const smokeItems = 64

// smokeRoutine builds smokeItems strings of the form "w<id>-<n>" one
// character at a time and pushes them onto the result array in args[1].
func smokeRoutine(ctx context.Context, args *vm.Array) {
	id := args.GetElement(0).(*vm.Int).Value()
	out := args.GetElement(1).(*vm.Array)
	prefix := vm.StringFrom("w" + strconv.Itoa(int(id)) + "-")
	for n := 0; n < smokeItems; n++ {
		if ctx.Err() != nil {
			return
		}
		num := vm.NewString()
		for _, c := range []byte(strconv.Itoa(n)) {
			num.AddChar(c)
		}
		out.Push(vm.Concat(prefix, num))
	}
}

// runSmoke runs workers threads, each with its own result array, and
// checks every string they produced.
func runSmoke(w io.Writer, workers int) error {
	results := make([]*vm.Array, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		results[i] = vm.NewArrayOf(0, "Array<String>")
		th := vm.NewThread(smokeRoutine, vm.ArrayOf(vm.NewInt(int32(i)), results[i]))
		g.Go(func() error {
			th.Start()
			th.Join()
			return checkSmoke(i, results[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(w, "smoke: %d workers x %d strings ok\n", workers, smokeItems)
	if stats, ok := heapStats(); ok {
		fmt.Fprintf(w, "heap: allocations=%d elements=%d in-place=%d copied=%d releases=%d\n",
			stats.Allocations, stats.Elements, stats.InPlace, stats.Refused, stats.Releases)
	}
	return nil
}

func checkSmoke(id int, out *vm.Array) error {
	if out.GetLength() != smokeItems {
		return fmt.Errorf("worker %d: produced %d strings, want %d", id, out.GetLength(), smokeItems)
	}
	for n := 0; n < smokeItems; n++ {
		obj := out.GetElement(n)
		vm.ThrowIfInvalidCast(obj, vm.StringVTable, "String")
		want := vm.StringFrom(fmt.Sprintf("w%d-%d", id, n))
		if !vm.Equal(obj.(*vm.String), want) {
			return fmt.Errorf("worker %d: item %d = %q, want %q", id, n, obj.(*vm.String), want)
		}
	}
	return nil
}

// heapStats sums the counters of the installed heaps when counting is on.
func heapStats() (vm.HeapStats, bool) {
	s := vm.CurrentSettings()
	var total vm.HeapStats
	counted := false
	if h, ok := s.Bytes.(*vm.CountingHeap[byte]); ok {
		total = total.Add(h.Stats())
		counted = true
	}
	if h, ok := s.Refs.(*vm.CountingHeap[vm.Object]); ok {
		total = total.Add(h.Stats())
		counted = true
	}
	return total, counted
}
