package main

import "github.com/monster-js/documentation/cmd"

func main() {
	cmd.Execute()
}
