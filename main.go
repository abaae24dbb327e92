package main

import (
	"github.com/driveterm/drive/internal/cmd"
)

func main() {
	cmd.Execute()
}
