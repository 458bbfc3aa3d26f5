package main

import (
	"github.com/kiruna-explorer/backend/internal/server"
	"github.com/kiruna-explorer/backend/internal/util"
	"github.com/kiruna-explorer/backend/pkg/logger"
	"github.com/kiruna-explorer/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  util.GetEnvBool("DEBUG", false),
		Format: util.GetEnv("LOG_FORMAT"),
		Prefix: "server",
	})
	logger.Init(consoleLogger)

	server.Init()
}
