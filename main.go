package main

import "github.com/znicholasbrown/student-loan-flow-bot/cmd"

func main() {
	cmd.Execute()
}
