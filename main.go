package main

import "github.com/mj1618/switcheroo/cmd"

func main() {
	cmd.Execute()
}
