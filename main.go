package main

import "github.com/urbanallinone/radio-host-api/cmd"

func main() {
	cmd.Execute()
}
