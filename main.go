package main

import (
	"log"

	"github.com/mbaumer/orderlink/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
