package main

import "github.com/vibejudge/vibejudge/cmd"

func main() {
	cmd.Execute()
}
