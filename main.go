package main

import (
	"log"
	"os"

	"github.com/avstrong/meetingrooms/internal/app"
	"github.com/avstrong/meetingrooms/internal/config"
	"github.com/avstrong/meetingrooms/internal/logger"
)

func main() {
	conf, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.NewForEnv(conf.Environment)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	var exitCode int

	if err := app.Run(l, conf); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	_ = l.Sync()

	os.Exit(exitCode)
}
