package main

import "github.com/kelimeci/kelimeci/cmd"

func main() {
	cmd.Execute()
}
