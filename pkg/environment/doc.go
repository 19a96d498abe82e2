// Package environment names the deployment environments the service runs in.
//
// Parse accepts the values of APP_ENV, including short forms, and is used by the
// logger factory to pick output format and level.
package environment
