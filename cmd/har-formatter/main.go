package main

import (
	"os"

	"github.com/cnharrison/har-formatter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
