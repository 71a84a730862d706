// nbt - named binary tag CLI tool
//
// Usage:
//
//	nbt dump [file]                  Print a tag file in the debug display form
//	nbt text [file]                  Print a tag file in the canonical text form
//	nbt parse [-o out] [file]        Convert the text form to a binary tag file
//	nbt hash [file...]               Print tag fingerprints
//	nbt region locate --x X --z Z    Locate a block in the region grid
//	nbt region name r.X.Z.mca        Print the ranges covered by a region file
//	nbt frames write FILE...         Write tag files as a frame stream
//	nbt frames read [file]           Decode a frame stream
//	nbt cbor encode|decode [file]    Convert between tag files and CBOR
//
// Compressed inputs are detected automatically. If no file is given, reads
// from stdin.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Neumenon/nbt/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// After the first signal, a second one kills the process even if
		// it is blocked reading stdin.
		<-ctx.Done()
		stop()
	}()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "nbt:", err)
		os.Exit(1)
	}
}
