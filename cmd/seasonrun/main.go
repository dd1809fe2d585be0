package main

import "github.com/fortuna/pennant/internal/cli"

func main() {
	cli.Execute()
}
