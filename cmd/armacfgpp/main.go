package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-armaconfig/cmd/armacfgpp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
