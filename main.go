package main

import (
	"github.com/Yalishenda/Invoice-Handler/config"
	"github.com/Yalishenda/Invoice-Handler/controllers"
)

func main() {
	app := controllers.App{}
	app.Initialize(config.Load())
	app.RunServer()
}
