package main

import "github.com/pvpc-tools/pvpc-exporter/internal/cli"

func main() {
	cli.Execute()
}
