package main

import (
	"fmt"
	"os"
)

func main() {
	root, a := newRootCmd()
	if err := execute(root, a); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
