// Command pgdoc-migrate converts document tables from the key-column layout
// to the embedded-key layout.
//
// Usage:
//
//	PGDOC_CONN_STR="postgres://..." pgdoc-migrate [--id-field Id] [--yes] [--concurrency N] table...
//
// The tool asks for confirmation unless --yes is given or
// PGDOC_MIGRATE_NO_PROMPT is set to 1 or true.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	exitCode := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:], env)
	stop()

	os.Exit(exitCode)
}
