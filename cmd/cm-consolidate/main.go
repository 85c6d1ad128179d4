// Package main provides the CLI entrypoint for cm-consolidate.
//
// cm-consolidate merges duplicate content models from a field-mapping export
// into one canonical content type per uid:
//   - consolidate reads exports, merges them and writes chunked schema files
//   - normalize-uid prints the canonical form of raw identifiers
//   - signature prints structural signatures of fields (debug aid)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
