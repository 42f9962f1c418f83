package main

import "github.com/theirongolddev/ada/cmd"

func main() {
	cmd.Execute()
}
