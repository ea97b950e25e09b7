package main

import (
	"github.com/teachpad/learning-assist/cmd"
)

func main() {
	cmd.Execute()
}
