// Package constants provides shared constants used throughout the codemap codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to chain APIs
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// FetchTimeout is the timeout for a full paginated fetch from one network
	FetchTimeout = 2 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// RetryBackoff is the base backoff duration for retries
	RetryBackoff = 1 * time.Second

	// MaxRetryBackoff is the maximum backoff duration for retries
	MaxRetryBackoff = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries = 3

	// MaxConcurrentFetches is the maximum number of concurrent network fetches
	MaxConcurrentFetches = 4

	// DefaultPageSize is the default number of items per page for paginated results
	DefaultPageSize = 100

	// MaxPages is a hard ceiling on pagination loops, guarding against a
	// server that keeps returning the same continuation token
	MaxPages = 10000

	// ChannelBufferSize is the default buffer size for channels
	ChannelBufferSize = 100

	// MaxContractNameLength is the maximum allowed length for contract names
	MaxContractNameLength = 256

	// MaxDescriptionLength is the maximum allowed length for descriptions
	MaxDescriptionLength = 4096
)

// Network constants
const (
	// DialTimeout is the timeout for establishing network connections
	DialTimeout = 10 * time.Second

	// KeepAliveInterval is the interval between keep-alive probes
	KeepAliveInterval = 30 * time.Second

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections = 100

	// MaxConnectionsPerHost is the maximum number of connections per host
	MaxConnectionsPerHost = 10
)

// Default values
const (
	// DefaultRegistryPath is the default path for the contract registry file
	DefaultRegistryPath = "contracts.json"

	// DefaultMainnetName is the default mainnet network name
	DefaultMainnetName = "juno"

	// DefaultMainnetREST is the default mainnet LCD endpoint
	DefaultMainnetREST = "https://rest.cosmos.directory/juno"

	// DefaultTestnetName is the default testnet network name
	DefaultTestnetName = "uni"

	// DefaultTestnetREST is the default testnet LCD endpoint
	DefaultTestnetREST = "https://rest.cosmos.directory/junotestnet"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatHuman is a human-readable time format
	TimeFormatHuman = "Jan 2, 2006 at 3:04pm MST"

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)
