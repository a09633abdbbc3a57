package main

import (
	"github.com/petrarca/stack-advisor/internal/cmd"
)

func main() {
	cmd.Execute()
}
