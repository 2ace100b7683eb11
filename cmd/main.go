package main

import (
	"github.com/abhinav28birajdar/TownTap-sub006/internal/app"
	"github.com/abhinav28birajdar/TownTap-sub006/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
