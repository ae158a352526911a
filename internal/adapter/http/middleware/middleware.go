package middleware

import (
	"github.com/roamhub/booking-ref-system/pkg/logger"
)

type Middleware struct {
	jwtSecret string
	log       logger.Logger
}

// NewMiddleware builds the middleware set. An empty jwtSecret disables the
// bearer-token guard on the ops endpoints.
func NewMiddleware(jwtSecret string, log logger.Logger) *Middleware {
	return &Middleware{
		jwtSecret: jwtSecret,
		log:       log,
	}
}
