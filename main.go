package main

import "github.com/tacenda/wordveil/cmd"

func main() {
	cmd.Execute()
}
