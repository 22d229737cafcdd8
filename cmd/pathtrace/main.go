// pathtrace traces least-cost routes across intensity images.
//
// Usage:
//
//	pathtrace trace --image in.png --from 0,0 --to 40,12 [--via 20,3]... [--overlay out.png]
//	pathtrace batch --image in.png --pairs pairs.yaml [--overlay out.png]
//	pathtrace serve [--addr :8080]
//
// Every command accepts --config (YAML or JSON) and --verbose.
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
