// Package utils provides small helpers shared by the transport layer: the
// preconfigured HTTP client and unverified JWT claim parsing.
package utils
