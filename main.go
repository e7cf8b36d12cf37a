package main

import "github.com/retailops/workforce-bot/cmd"

func main() {
	cmd.Execute()
}
