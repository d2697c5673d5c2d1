package main

import "github.com/guimsilvaa/topufa/internal/cli"

func main() {
	cli.Execute()
}
