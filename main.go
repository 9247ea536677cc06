// main is the entrypoint for the clonecache CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/clonecache/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
