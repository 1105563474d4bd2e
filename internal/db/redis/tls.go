package redis

import (
	"crypto/tls"
	"net"
)

// newTLSConfig builds a client TLS config for managed endpoints, using the host of addr as SNI.
func newTLSConfig(addr string) *tls.Config {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	return &tls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}
}
