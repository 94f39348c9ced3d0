package main

import "github.com/OpenTraceLab/OpenTraceSchema/cmd/schview/cmd"

func main() {
	cmd.Execute()
}
