package main

import "github.com/cmflow/cmflow/cmd"

func main() {
	cmd.Execute()
}
