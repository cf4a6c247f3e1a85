package main

import (
	"os"

	_ "github.com/lib/pq"
)

func main() {
	a := &app{}
	if err := newRootCommand(a).Execute(); err != nil {
		a.report(os.Stderr, err)
		os.Exit(1)
	}
}
