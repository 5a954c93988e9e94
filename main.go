package main

import (
	"os"

	"github.com/yahsan2/yt-list/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
