package main

import "github.com/hari2128-cell/CureVox/internal/app"

func main() {
	app.Run()
}
