// madlibs - Mad Libs from a generative model
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/madlibs

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ariel-frischer/madlibs/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
