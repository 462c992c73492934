package main

import (
	"log"

	"github.com/studyshelf/catalog-api/app"
)

func main() {
	// setup and run app
	err := app.SetupAndRunServer()
	if err != nil {
		log.Fatal(err)
	}
}
