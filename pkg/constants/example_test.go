package constants_test

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/wasmregistry/codemap/pkg/constants"
)

// Example demonstrates using constants for common operations
func Example() {
	// Create directory with standard permissions
	dir := filepath.Join(".", "data")
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		panic(err)
	}

	// Create file with standard permissions
	file := filepath.Join(dir, "contracts.json")
	data := []byte("[]")
	if err := os.WriteFile(file, data, constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Printf("Created dir with %o permissions\n", constants.DirPermissions)
	fmt.Printf("Created file with %o permissions\n", constants.FilePermissions)
	// Output:
	// Created dir with 755 permissions
	// Created file with 644 permissions
}

// Example_timeouts demonstrates timeout constants
func Example_timeouts() {
	// HTTP client with default timeout
	client := &http.Client{
		Timeout: constants.DefaultHTTPTimeout,
	}
	fmt.Printf("HTTP timeout: %v\n", client.Timeout)

	// Context with operation timeout
	ctx, cancel := context.WithTimeout(
		context.Background(),
		constants.DefaultTimeout,
	)
	defer cancel()

	// Simulated operation
	select {
	case <-time.After(100 * time.Millisecond):
		fmt.Println("Operation completed")
	case <-ctx.Done():
		fmt.Println("Operation timed out")
	}

	// Output:
	// HTTP timeout: 30s
	// Operation completed
}

// Example_defaults shows the default network endpoints
func Example_defaults() {
	fmt.Printf("Registry: %s\n", constants.DefaultRegistryPath)
	fmt.Printf("Mainnet: %s\n", constants.DefaultMainnetREST)
	fmt.Printf("Testnet: %s\n", constants.DefaultTestnetREST)

	// Output:
	// Registry: contracts.json
	// Mainnet: https://rest.cosmos.directory/juno
	// Testnet: https://rest.cosmos.directory/junotestnet
}

// Example_retryLogic demonstrates using retry constants
func Example_retryLogic() {
	// Exponential backoff with constants
	operation := func() error {
		// Simulated operation that might fail
		return fmt.Errorf("temporary error")
	}

	var lastErr error
	for i := 0; i < constants.MaxRetries; i++ {
		err := operation()
		if err == nil {
			fmt.Println("Success")
			break
		}
		lastErr = err

		if i < constants.MaxRetries-1 {
			// Calculate backoff
			backoff := constants.RetryBackoff * time.Duration(1<<i)
			if backoff > constants.MaxRetryBackoff {
				backoff = constants.MaxRetryBackoff
			}
			fmt.Printf("Retry %d/%d after %v\n", i+1, constants.MaxRetries, backoff)
		}
	}

	if lastErr != nil {
		fmt.Printf("Failed after %d retries\n", constants.MaxRetries)
	}

	// Output:
	// Retry 1/3 after 1s
	// Retry 2/3 after 2s
	// Failed after 3 retries
}

// Example_pagination demonstrates pagination constants
func Example_pagination() {
	// Channel with standard buffer size
	ch := make(chan string, constants.ChannelBufferSize)
	close(ch)

	fmt.Printf("Page size: %d\n", constants.DefaultPageSize)
	fmt.Printf("Page ceiling: %d\n", constants.MaxPages)

	// Output:
	// Page size: 100
	// Page ceiling: 10000
}

// Example_contextTimeouts shows different context timeout scenarios
func Example_contextTimeouts() {
	// Short operation
	_, shortCancel := context.WithTimeout(
		context.Background(),
		constants.DefaultTimeout,
	)
	defer shortCancel()

	// Full paginated fetch
	_, fetchCancel := context.WithTimeout(
		context.Background(),
		constants.FetchTimeout,
	)
	defer fetchCancel()

	fmt.Printf("Default timeout: %v\n", constants.DefaultTimeout)
	fmt.Printf("Fetch timeout: %v\n", constants.FetchTimeout)

	// Output:
	// Default timeout: 10s
	// Fetch timeout: 2m0s
}
