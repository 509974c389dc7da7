package errx

// CreateByCode creates an Error from a registered code, message, and optional cause.
// Unregistered codes fall back to the generic OARC kind.
func CreateByCode(code, message string, cause error) *Error {
	kind := KindOARC
	if entry, ok := LookupCode(code); ok {
		kind = entry.Kind
	}
	return newError(kind, message, cause, 3)
}

// FromSentinel creates an Error from a sentinel error and optional message/cause.
// The sentinel is used to determine the kind via a lookup function and becomes
// the base for errors.Is matching.
func FromSentinel(sentinel error, lookup func(error) Kind, message string, cause error) *Error {
	kind := lookup(sentinel)
	if _, ok := EntryFor(kind); !ok {
		kind = KindOARC
	}
	return newError(kind, message, cause, 3).WithBase(sentinel)
}

// OARC creates a generic operational error (exit code 1).
func OARC(message string) *Error {
	return newError(KindOARC, message, nil, 3)
}

// WrapOARC wraps a cause with a generic operational error.
func WrapOARC(message string, cause error) *Error {
	return newError(KindOARC, message, cause, 3)
}

// Authentication creates an authentication error (exit code 4).
func Authentication(message string) *Error {
	return newError(KindAuthentication, message, nil, 3)
}

// WrapAuthentication wraps a cause with an authentication error.
func WrapAuthentication(message string, cause error) *Error {
	return newError(KindAuthentication, message, cause, 3)
}

// Build creates a build error (exit code 7).
func Build(message string) *Error {
	return newError(KindBuild, message, nil, 3)
}

// WrapBuild wraps a cause with a build error.
func WrapBuild(message string, cause error) *Error {
	return newError(KindBuild, message, cause, 3)
}

// Configuration creates a configuration error (exit code 9).
func Configuration(message string) *Error {
	return newError(KindConfiguration, message, nil, 3)
}

// WrapConfiguration wraps a cause with a configuration error.
func WrapConfiguration(message string, cause error) *Error {
	return newError(KindConfiguration, message, cause, 3)
}

// CrawlerOp creates a crawl operation error (exit code 6).
func CrawlerOp(message string) *Error {
	return newError(KindCrawlerOp, message, nil, 3)
}

// WrapCrawlerOp wraps a cause with a crawl operation error.
func WrapCrawlerOp(message string, cause error) *Error {
	return newError(KindCrawlerOp, message, cause, 3)
}

// DataExtraction creates a data extraction error (exit code 5).
func DataExtraction(message string) *Error {
	return newError(KindDataExtraction, message, nil, 3)
}

// WrapDataExtraction wraps a cause with a data extraction error.
func WrapDataExtraction(message string, cause error) *Error {
	return newError(KindDataExtraction, message, cause, 3)
}

// Network creates a network error (exit code 2).
func Network(message string) *Error {
	return newError(KindNetwork, message, nil, 3)
}

// WrapNetwork wraps a cause with a network error.
func WrapNetwork(message string, cause error) *Error {
	return newError(KindNetwork, message, cause, 3)
}

// Publish creates a publish error (exit code 8).
func Publish(message string) *Error {
	return newError(KindPublish, message, nil, 3)
}

// WrapPublish wraps a cause with a publish error.
func WrapPublish(message string, cause error) *Error {
	return newError(KindPublish, message, cause, 3)
}

// ResourceNotFound creates a resource-not-found error (exit code 3).
func ResourceNotFound(message string) *Error {
	return newError(KindResourceNotFound, message, nil, 3)
}

// WrapResourceNotFound wraps a cause with a resource-not-found error.
func WrapResourceNotFound(message string, cause error) *Error {
	return newError(KindResourceNotFound, message, cause, 3)
}

// MCP creates an MCP error. MCP errors define no exit code.
func MCP(message string) *Error {
	return newError(KindMCP, message, nil, 3)
}

// WrapMCP wraps a cause with an MCP error.
func WrapMCP(message string, cause error) *Error {
	return newError(KindMCP, message, cause, 3)
}

// Transport creates an MCP transport error. Transport errors define no exit code.
func Transport(message string) *Error {
	return newError(KindTransport, message, nil, 3)
}

// WrapTransport wraps a cause with an MCP transport error.
func WrapTransport(message string, cause error) *Error {
	return newError(KindTransport, message, cause, 3)
}

// Usage creates a usage error for malformed command-line input (exit code 2).
func Usage(message string) *Error {
	return newError(KindUsage, message, nil, 3)
}

// WrapUsage wraps an argument-parsing failure with a usage error.
func WrapUsage(message string, cause error) *Error {
	return newError(KindUsage, message, cause, 3)
}
