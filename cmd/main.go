package main

import "enigmaCrackerBackend/internal/platform/cli"

func main() {
	cli.Execute()
}
