// Package logger builds the application's zap logger.  Handlers mostly
// respond without logging; the logger covers server lifecycle, the queue
// consumer and the request-log middleware.
package logger

import "go.uber.org/zap"

// New returns a SugaredLogger tuned to the environment: human-readable
// console output in development, JSON in anything else.
func New(env string) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	switch env {
	case "dev", "development":
		l, err = zap.NewDevelopment()
	default:
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
