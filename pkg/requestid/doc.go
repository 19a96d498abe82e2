// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware keeps a client supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-], otherwise it generates a UUID. The id is
// echoed in the response header and available through FromContext.
// LoggerExtractor plugs it into logger.WithContextExtractors so records
// written with the request context carry request_id.
package requestid
