package main

import (
	"os"

	"github.com/smasonuk/sieroom/pkg/logger"
)

func main() {
	logger.Init()
	if err := newRootCmd().Execute(); err != nil {
		logger.Log.WithError(err).Error("sieroom failed")
		os.Exit(1)
	}
}
