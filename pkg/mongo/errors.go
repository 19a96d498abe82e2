package mongo

import "errors"

var (
	ErrEmptyConnectionURL     = errors.New("empty mongo connection url, use MONGODB_URL env var")
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrFailedToCreateIndex    = errors.New("failed to create mongo ttl index")
)
