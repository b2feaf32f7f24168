package main

import "github.com/trobanga/ladle/cmd"

func main() {
	cmd.Execute()
}
