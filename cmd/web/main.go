package main

import "hellostore_backend/internal/app"

func main() {
	app.Run()
}
