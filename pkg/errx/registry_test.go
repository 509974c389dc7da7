package errx

import (
	"testing"
)

func TestRegistry_ErrorRegistry(t *testing.T) {
	entries := ErrorRegistry()
	if len(entries) != len(registryEntries) {
		t.Errorf("ErrorRegistry() = %v, want %v", len(entries), len(registryEntries))
	}
	for i, entry := range entries {
		if entry != registryEntries[i] {
			t.Errorf("ErrorRegistry()[%d] = %v, want %v", i, entry, registryEntries[i])
		}
	}

	entries[0].ExitCode = 99
	if registryEntries[0].ExitCode == 99 {
		t.Error("ErrorRegistry() must return a copy")
	}
}

func TestRegistry_DescriptionFor(t *testing.T) {
	desc, ok := DescriptionFor(CodeConfiguration)
	if !ok || desc != DescConfiguration {
		t.Errorf("DescriptionFor(%q) = %q, want %q", CodeConfiguration, desc, DescConfiguration)
	}
}

func TestRegistry_IsValidCode(t *testing.T) {
	if !IsValidCode(CodeUsage) {
		t.Errorf("IsValidCode(%q) = %v, want %v", CodeUsage, IsValidCode(CodeUsage), true)
	}
	if IsValidCode("99999") {
		t.Errorf("IsValidCode(%q) = true, want false", "99999")
	}
}

func TestRegistry_Lookup(t *testing.T) {
	entry, ok := LookupName("ResourceNotFoundError")
	if !ok || entry.Kind != KindResourceNotFound || entry.ExitCode != 3 {
		t.Errorf("LookupName() = %+v, %v", entry, ok)
	}
	entry, ok = LookupCode(CodeCrawlerOp)
	if !ok || entry.Name != "CrawlerOpError" {
		t.Errorf("LookupCode() = %+v, %v", entry, ok)
	}
}

func TestRegistry_Roots(t *testing.T) {
	operational := []Kind{
		KindOARC, KindNetwork, KindResourceNotFound, KindAuthentication,
		KindDataExtraction, KindCrawlerOp, KindBuild, KindPublish, KindConfiguration,
	}
	for _, kind := range operational {
		if kind.Root() != RootOperational {
			t.Errorf("%v.Root() = %v, want %v", kind, kind.Root(), RootOperational)
		}
	}
	if KindTransport.Root() != RootMCP || KindMCP.Root() != RootMCP {
		t.Error("MCP and transport kinds must belong to the MCP root")
	}
	if KindUsage.Root() != RootUsage {
		t.Errorf("KindUsage.Root() = %v, want %v", KindUsage.Root(), RootUsage)
	}
	if KindUnknown.Root() != 0 {
		t.Errorf("KindUnknown.Root() = %v, want 0", KindUnknown.Root())
	}
}

func TestRegistry_KindString(t *testing.T) {
	if KindNetwork.String() != "NetworkError" {
		t.Errorf("KindNetwork.String() = %q", KindNetwork.String())
	}
	if Kind(42).String() != "Kind(42)" {
		t.Errorf("Kind(42).String() = %q", Kind(42).String())
	}
}
