// Package errx provides the OARC error taxonomy: structured, code-based errors
// whose kind fixes the process exit code reported for them.
//
// Each error has:
//   - A kind from a closed set (e.g. KindNetwork)
//   - A stable 5-digit error code (e.g. "80200" for network errors)
//   - A category description (e.g. "Network error")
//   - A user-facing message
//   - Optional structured context (key-value pairs)
//   - Optional cause and base sentinel errors
//   - The stack recorded at creation, rendered by Trace
//
// Kinds belong to one of three roots:
//   - RootOperational: expected failures with a per-kind exit code (1-9)
//   - RootMCP: MCP and transport errors, with no exit code
//   - RootUsage: malformed command-line input, exit code 2
//
// Example usage:
//
//	err := errx.WrapNetwork("failed to reach crawler endpoint", dialErr).
//		WithContext("url", "https://example.com").
//		WithBase(sentinelErr)
//
//	if code, ok := err.ExitCode(); ok {
//		os.Exit(code)
//	}
//
//	fmt.Println(errx.UserString(err))  // User-friendly message
//	fmt.Println(errx.DebugString(err)) // Full debug details
package errx
