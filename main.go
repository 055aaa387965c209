package main

import "github.com/rpgo/drawdown/cmd"

func main() {
	cmd.Execute()
}
