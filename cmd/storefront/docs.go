package main

// @title Storefront API
// @version 1.0
// @description Product catalogue and shared basket with stock reservation

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8000
// @BasePath /
