// Command cardfuse is installable from the module root:
//
//	go install tableflip.dev/cardfuse@latest
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"tableflip.dev/cardfuse/pkg/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.New().ExecuteContext(ctx); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
