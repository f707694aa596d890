package main

import (
	"os"

	"curex/internal/app"

	"github.com/sirupsen/logrus"
)

// @title curex API
// @version 1.0
// @description Multi-currency converter backend: selection, instant conversion, rates and quota.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped with error")
		os.Exit(1)
	}
}
