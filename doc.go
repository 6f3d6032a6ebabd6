// Package mcwire is a client library for the Minecraft server wire
// protocol, speaking revisions 47 (1.8.x) and 754 (1.16.4-1.16.5)
// behind one version-agnostic event API.
//
// The layers, bottom up: wire holds the primitive codec and the
// length-prefixed, optionally zlib-compressed frame layer; crypt holds
// the AES/CFB8 stream cipher, RSA key wrapping and the session
// service's digest; protocol defines the event algebra with per-version
// codecs in protocol/v47 and protocol/v754; client owns the connection
// state machine and the login facade; auth talks to the session
// service.
package mcwire
