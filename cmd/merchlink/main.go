package main

import "github.com/merchlink/merchlink/internal/cli"

func main() {
	cli.Main()
}
