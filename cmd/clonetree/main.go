// Command clonetree reconstructs tumor lineage trees from pre-clustered
// mutation groups described in a YAML document.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
