package main

import "github.com/betterleaks/kwfsm/cmd"

func main() {
	cmd.Execute()
}
