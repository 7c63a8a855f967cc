package cli

import (
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Exit codes returned by the mcpapp binary.
const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	ExitCodeDrift   = 2
)

// DriftError reports that the lineage files on disk no longer match the
// items registered with the server.
type DriftError struct {
	// Files lists the lineage files that differ.
	Files []string
}

// Error returns a message naming the stale files and how to refresh them.
func (e *DriftError) Error() string {
	return fmt.Sprintf(`lineage metadata is out of date: %s

To refresh it, run:
  mcpapp load-and-save-mcp-item-metadata`, strings.Join(e.Files, ", "))
}

// ExitCode returns the process exit code for a drift.
func (e *DriftError) ExitCode() int {
	return ExitCodeDrift
}

// Is allows errors.Is() to work with wrapped errors.
func (e *DriftError) Is(target error) bool {
	_, ok := target.(*DriftError)
	return ok
}

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorTLS indicates a TLS/certificate verification error.
	ConnectionErrorTLS
	// ConnectionErrorNetwork indicates a refused or unreachable endpoint.
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorTLS:
		return "TLS certificate error"
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "Connection error"
	}
}

// ConnectionError indicates that a remote MCP server given with --url could
// not be reached.
type ConnectionError struct {
	// Endpoint is the URL that could not be reached.
	Endpoint string
	// Type categorizes the connection error.
	Type ConnectionErrorType
	// Reason is the underlying error.
	Reason error
}

// Error returns the categorized failure with the endpoint.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s connecting to %s: %v", e.Type, e.Endpoint, e.Reason)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// ClassifyConnectionError wraps err in a ConnectionError of the matching type.
// A nil error yields nil.
func ClassifyConnectionError(err error, endpoint string) *ConnectionError {
	if err == nil {
		return nil
	}

	connErr := &ConnectionError{Endpoint: endpoint, Type: ConnectionErrorUnknown, Reason: err}

	var dnsErr *net.DNSError
	switch {
	case isTLSError(err):
		connErr.Type = ConnectionErrorTLS
	case errors.As(err, &dnsErr):
		connErr.Type = ConnectionErrorDNS
	case isTimeoutError(err):
		connErr.Type = ConnectionErrorTimeout
	case isNetworkError(err.Error()):
		connErr.Type = ConnectionErrorNetwork
	}
	return connErr
}

func isTLSError(err error) bool {
	var certErr x509.CertificateInvalidError
	var hostErr x509.HostnameError
	var unknownAuthErr x509.UnknownAuthorityError
	if errors.As(err, &certErr) || errors.As(err, &hostErr) || errors.As(err, &unknownAuthErr) {
		return true
	}

	errStr := err.Error()
	for _, keyword := range []string{"x509:", "certificate", "tls:", "TLS handshake"} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

func isNetworkError(errStr string) bool {
	for _, keyword := range []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
	} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
