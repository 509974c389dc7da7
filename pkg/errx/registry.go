package errx

import "strconv"

// Kind identifies an error category of the taxonomy.
type Kind int

// Kinds of the taxonomy. KindUnknown is the zero value and never registered.
const (
	KindUnknown Kind = iota
	KindOARC
	KindNetwork
	KindResourceNotFound
	KindAuthentication
	KindDataExtraction
	KindCrawlerOp
	KindBuild
	KindPublish
	KindConfiguration
	KindMCP
	KindTransport
	KindUsage
)

// Root is the category a kind belongs to.
type Root int

const (
	// RootOperational kinds carry an exit code and are reported as expected failures.
	RootOperational Root = iota + 1
	// RootMCP kinds define no exit code.
	RootMCP
	// RootUsage is reserved for argument-parsing failures.
	RootUsage
)

// String returns the root name.
func (r Root) String() string {
	switch r {
	case RootOperational:
		return "operational"
	case RootMCP:
		return "mcp"
	case RootUsage:
		return "usage"
	default:
		return "unknown"
	}
}

// RegistryEntry describes a registered error kind.
type RegistryEntry struct {
	Kind        Kind   `json:"-" yaml:"-"`
	Name        string `json:"name" yaml:"name"`
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	// ExitCode is zero when the kind defines none.
	ExitCode int  `json:"exit_code,omitempty" yaml:"exit_code,omitempty"`
	Root     Root `json:"-" yaml:"-"`
}

// Error codes follow a stable 5-digit scheme where the first two digits are the
// domain and the last three digits are reserved for subcodes.
//   - 70xxx: usage errors
//   - 80xxx: operational errors, third digit mirrors the exit code
//   - 81xxx: MCP errors
const (
	CodeUsage            = "70000"
	CodeOARC             = "80000"
	CodeNetwork          = "80200"
	CodeResourceNotFound = "80300"
	CodeAuthentication   = "80400"
	CodeDataExtraction   = "80500"
	CodeCrawlerOp        = "80600"
	CodeBuild            = "80700"
	CodePublish          = "80800"
	CodeConfiguration    = "80900"
	CodeMCP              = "81000"
	CodeTransport        = "81100"
)

const (
	DescUsage            = "Usage error"
	DescOARC             = "OARC error"
	DescNetwork          = "Network error"
	DescResourceNotFound = "Resource not found"
	DescAuthentication   = "Authentication error"
	DescDataExtraction   = "Data extraction error"
	DescCrawlerOp        = "Crawler operation error"
	DescBuild            = "Build error"
	DescPublish          = "Publish error"
	DescConfiguration    = "Configuration error"
	DescMCP              = "MCP error"
	DescTransport        = "MCP transport error"
)

// Process exit codes.
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitUsage      = 2
	ExitUnexpected = 1
)

var registryEntries = []RegistryEntry{
	{Kind: KindOARC, Name: "OARCError", Code: CodeOARC, Description: DescOARC, ExitCode: 1, Root: RootOperational},
	{Kind: KindNetwork, Name: "NetworkError", Code: CodeNetwork, Description: DescNetwork, ExitCode: 2, Root: RootOperational},
	{Kind: KindResourceNotFound, Name: "ResourceNotFoundError", Code: CodeResourceNotFound, Description: DescResourceNotFound, ExitCode: 3, Root: RootOperational},
	{Kind: KindAuthentication, Name: "AuthenticationError", Code: CodeAuthentication, Description: DescAuthentication, ExitCode: 4, Root: RootOperational},
	{Kind: KindDataExtraction, Name: "DataExtractionError", Code: CodeDataExtraction, Description: DescDataExtraction, ExitCode: 5, Root: RootOperational},
	{Kind: KindCrawlerOp, Name: "CrawlerOpError", Code: CodeCrawlerOp, Description: DescCrawlerOp, ExitCode: 6, Root: RootOperational},
	{Kind: KindBuild, Name: "BuildError", Code: CodeBuild, Description: DescBuild, ExitCode: 7, Root: RootOperational},
	{Kind: KindPublish, Name: "PublishError", Code: CodePublish, Description: DescPublish, ExitCode: 8, Root: RootOperational},
	{Kind: KindConfiguration, Name: "ConfigurationError", Code: CodeConfiguration, Description: DescConfiguration, ExitCode: 9, Root: RootOperational},
	{Kind: KindMCP, Name: "MCPError", Code: CodeMCP, Description: DescMCP, Root: RootMCP},
	{Kind: KindTransport, Name: "TransportError", Code: CodeTransport, Description: DescTransport, Root: RootMCP},
	{Kind: KindUsage, Name: "UsageError", Code: CodeUsage, Description: DescUsage, ExitCode: ExitUsage, Root: RootUsage},
}

var (
	byKind = make(map[Kind]RegistryEntry, len(registryEntries))
	byCode = make(map[string]RegistryEntry, len(registryEntries))
	byName = make(map[string]RegistryEntry, len(registryEntries))
)

func init() {
	for _, entry := range registryEntries {
		byKind[entry.Kind] = entry
		byCode[entry.Code] = entry
		byName[entry.Name] = entry
	}
}

// ErrorRegistry returns the error registry in deterministic order.
func ErrorRegistry() []RegistryEntry {
	entries := make([]RegistryEntry, len(registryEntries))
	copy(entries, registryEntries)
	return entries
}

// EntryFor returns the registry entry for a kind.
func EntryFor(kind Kind) (RegistryEntry, bool) {
	entry, ok := byKind[kind]
	return entry, ok
}

// LookupCode returns the registry entry for a code.
func LookupCode(code string) (RegistryEntry, bool) {
	entry, ok := byCode[code]
	return entry, ok
}

// LookupName returns the registry entry for a type name such as "NetworkError".
func LookupName(name string) (RegistryEntry, bool) {
	entry, ok := byName[name]
	return entry, ok
}

// DescriptionFor returns the registry description for a code.
func DescriptionFor(code string) (string, bool) {
	entry, ok := byCode[code]
	return entry.Description, ok
}

// IsValidCode checks if the given error code is registered.
func IsValidCode(code string) bool {
	_, ok := byCode[code]
	return ok
}

// String returns the type name of the kind, e.g. "NetworkError".
func (k Kind) String() string {
	if entry, ok := byKind[k]; ok {
		return entry.Name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Root returns the category the kind belongs to, or zero for unregistered kinds.
func (k Kind) Root() Root {
	return byKind[k].Root
}

// ExitCode returns the exit code fixed for the kind.
// The second result is false when the kind defines none.
func (k Kind) ExitCode() (int, bool) {
	entry, ok := byKind[k]
	if !ok || entry.ExitCode == 0 {
		return 0, false
	}
	return entry.ExitCode, true
}
