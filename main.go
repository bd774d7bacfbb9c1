package main

import "github.com/chriserin/ftmd/cmd"

func main() {
	cmd.Execute()
}
