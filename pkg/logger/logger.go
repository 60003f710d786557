package logger

import (
	"go.uber.org/zap"
)

// NewLogger returns a development logger when env is "development" and a
// production logger otherwise.
func NewLogger(env string) *zap.Logger {
	var l *zap.Logger
	var err error

	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}

	return l
}
