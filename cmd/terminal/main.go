package main

import "github.com/Indemos/Terminal-sub004/cli"

func main() {
	cli.Execute()
}
