// Package main rewrites the <time> elements of an HTML document into the
// viewer's locale-formatted datetime.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	timelabelcmd "github.com/louisbranch/timelabel/internal/cmd/timelabel"
	"github.com/louisbranch/timelabel/internal/platform/config"
)

func main() {
	cfg, err := timelabelcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[TIMELABEL] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := timelabelcmd.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("failed to localize: %v", err)
	}
}
