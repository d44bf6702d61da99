package main

import "tradedocs/go_backend/internal/app"

func main() {
	app.Run()
}
