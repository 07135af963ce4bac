package main

import (
	"context"
	"os"

	"github.com/Makepad-fr/giveaway/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:]))
}
