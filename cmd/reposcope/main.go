package main

import "github.com/reposcope/reposcope/internal/cli"

func main() {
	cli.Execute()
}
