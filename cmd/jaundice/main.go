package main

import (
	"os"

	"github.com/user/jaundice-service/cmd/jaundice/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
