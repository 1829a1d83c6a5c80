package main

import "github.com/naka-gawa/github-stars/cmd"

func main() {
	cmd.Execute()
}
