package main

import "github.com/sadopc/gantt/cmd"

func main() {
	cmd.Execute()
}
