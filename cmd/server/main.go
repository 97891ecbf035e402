package main

import "gomart/internal/app"

// @title           GoMart API
// @version         1.0
// @description     Online shop backend with verified registration, JWT auth and RBAC.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @BasePath /
func main() {
	app.Run()
}
