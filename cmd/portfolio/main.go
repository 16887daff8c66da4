package main

import "github.com/iamsank8/portfolio/pkg/cli"

func main() {
	cli.Execute()
}
