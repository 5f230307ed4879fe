package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"barvid/cmd/app"
)

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token, also accepted as an HTTP-only cookie
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
