// Package clientip extracts the originating client address from a request
// that may have passed through proxies, load balancers or a CDN.
//
// Headers are checked in priority order: CF-Connecting-IP (Cloudflare),
// DO-Connecting-IP (DigitalOcean), X-Forwarded-For (leftmost address),
// X-Real-IP, and finally RemoteAddr. Addresses are validated with
// net.ParseIP and normalized; 0.0.0.0 and :: are rejected.
//
// Only deploy behind proxies that overwrite these headers: a client talking to
// the server directly can set them to anything.
package clientip
