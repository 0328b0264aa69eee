package main

import (
	"fieldbook/config"
	"fieldbook/di"
	"fieldbook/shared/logger"
)

// @title Fieldbook API
// @version 1.0
// @description Soccer field reservation service.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
