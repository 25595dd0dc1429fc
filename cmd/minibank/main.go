package main

import "github.com/minibank/minibank/internal/cli"

func main() {
	cli.Execute()
}
