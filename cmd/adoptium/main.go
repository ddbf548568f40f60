package main

import "github.com/git-pkgs/adoptium/internal/cli"

func main() {
	cli.Execute()
}
