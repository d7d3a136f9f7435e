// Command colorcode prints the hex, RGB, HSL and CMYK codes of colors
// together with their nearest CSS color name.
//
//	colorcode 3357ff '#f80'
//	colorcode --json --metric lab 3357ff
//	colorcode contrast 000 fff
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
