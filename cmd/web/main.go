package main

import "billpilot_backend/internal/app"

func main() {
	app.Run()
}
