// rtcore CLI - exercises the runtime core and inspects object snapshots
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/rtcore/manifest"
	"github.com/chazu/rtcore/vm"
)

var log = commonlog.GetLogger("rtcore.cli")

func main() {
	verbose := flag.Int("v", -1, "Log verbosity (overrides rtcore.toml)")
	dir := flag.String("dir", ".", "Directory to search for rtcore.toml")
	workers := flag.Int("workers", 4, "Number of threads for the smoke workload")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rtcore [options] <command> [args]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  smoke          Run a concurrent workload against the core\n")
		fmt.Fprintf(os.Stderr, "  dump FILE      Write a sample object snapshot to FILE\n")
		fmt.Fprintf(os.Stderr, "  inspect FILE   Print the snapshot stored in FILE\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	m, err := loadManifest(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	verbosity := m.Log.Verbosity
	if *verbose >= 0 {
		verbosity = *verbose
	}
	commonlog.Configure(verbosity, m.LogPath())
	vm.Configure(m.Settings())

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch args[0] {
	case "smoke":
		err = runSmoke(os.Stdout, *workers)
	case "dump":
		if len(args) < 2 {
			err = fmt.Errorf("dump requires a file argument")
			break
		}
		err = writeSample(args[1])
	case "inspect":
		if len(args) < 2 {
			err = fmt.Errorf("inspect requires a file argument")
			break
		}
		err = inspect(os.Stdout, args[1])
	default:
		err = fmt.Errorf("unknown command %q", args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadManifest finds rtcore.toml at or above dir, falling back to defaults.
func loadManifest(dir string) (*manifest.Manifest, error) {
	m, err := manifest.FindAndLoad(dir)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return manifest.Default(), nil
	}
	log.Infof("loaded %s from %s", manifest.FileName, m.Dir)
	return m, nil
}
