package main

import (
	"github.com/andrescamacho/gridstock/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
