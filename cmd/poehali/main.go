package main

import (
	"github.com/pr-poehali-dev/site-clone-poehali/internal/cli"
)

func main() {
	cli.Execute()
}
