// contactctl drives the contact form from a terminal: it fills a form
// session from flags, validates it with the same rules as the website and
// submits it to a running intake API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
