package main

import (
	"github.com/easyorganic/order-svc/internal/app"
	"github.com/easyorganic/order-svc/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
