package main

import (
	"log"

	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
