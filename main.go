package main

import (
	"github.com/movingtraffic/suggestscope/cmd"
)

func main() {
	cmd.Execute()
}
