package main

import (
	"os"
	sys "os"
)

func main() {
	defer func() {
		os.Exit(2) // want "прямой вызов os.Exit\\(\\) запрещен в функции main"
	}()

	if len(os.Args) > 3 {
		sys.Exit(1) // want "прямой вызов os.Exit\\(\\) запрещен в функции main"
	}
	os.Exit(0) // want "прямой вызов os.Exit\\(\\) запрещен в функции main"
}

func run() {
	os.Exit(1)
}
