// Package clientip resolves the network address of the client that issued an
// HTTP request.
//
// RemoteIP returns the transport-level peer address and is what session
// fingerprints bind to by default. GetIP additionally honours a caller-supplied
// list of trusted proxy headers (see DefaultProxyHeaders) for deployments that
// sit behind a load balancer.
//
// Addresses are returned verbatim, without canonicalisation, so that values
// derived from them compare byte for byte across requests.
//
// # Usage
//
//	ip := clientip.RemoteIP(r)
//	ip = clientip.GetIP(r, clientip.DefaultProxyHeaders...)
package clientip
