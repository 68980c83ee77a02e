package main

import "bzl/internal/cli"

func main() {
	cli.Execute()
}
