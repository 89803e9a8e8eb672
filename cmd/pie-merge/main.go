// Command pie-merge runs the pie merge puzzle in a terminal or headless
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
