package http

import (
	"github.com/jobboard-api/internal/infrastructure/cache"
	jwtinfra "github.com/jobboard-api/internal/infrastructure/jwt"
	"github.com/jobboard-api/internal/infrastructure/postgres"
	s3infra "github.com/jobboard-api/internal/infrastructure/s3"
	"github.com/jobboard-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo        *postgres.UserRepo
	JobRepo         *postgres.JobRepo
	ApplicationRepo *postgres.ApplicationRepo
	FileRepo        *postgres.FileRepo
	Cache           cache.Store
	Mailer          smtp.Mailer
	ObjectStore     *s3infra.Store
	JWTProvider     *jwtinfra.Provider
}
