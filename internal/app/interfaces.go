package app

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=./app_mock.go -package=app

// Runner blocks until ctx is canceled or it fails.
type Runner interface {
	Run(ctx context.Context) error
}
