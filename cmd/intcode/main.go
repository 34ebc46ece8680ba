package main

import (
	"go.brendoncarroll.net/star"

	"intcode.org/intcode/iccmd"
)

func main() {
	star.Main(iccmd.Root())
}
