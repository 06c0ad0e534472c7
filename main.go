package main

import "github.com/moyu-x/duplicate-finder/cmd"

func main() {
	cmd.Execute()
}
