// Package token implements the pure credential decoder used by the goGate
// guard. It splits a raw credential into its three dot-separated segments,
// base64url-decodes the payload segment, and parses it as JSON.
//
// Decoding is deliberately unverified: goGate sits on the client side of the
// login boundary and only needs the expiry claim to decide render-vs-redirect.
// Signature verification belongs to the server that accepts the credential,
// never to this package.
//
// All decode failures collapse into [ErrMalformed]; callers never see a
// differentiated parse error and the decoder never panics on arbitrary input.
package token
