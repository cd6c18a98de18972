package main

import "github.com/jwwisniewski/claude-plugins/internal/cmd"

func main() {
	cmd.Execute()
}
