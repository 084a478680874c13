package main

import (
	"github.com/vidprocc/vidpro/app"
)

func main() {
	app.Run()
}
