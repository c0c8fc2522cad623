package main

import (
	"fmt"
	"os"

	"github.com/schoolhub/registrar/internal/cli"
)

// version is set at build time with
// -ldflags "-X main.version=v1.2.3"
var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
