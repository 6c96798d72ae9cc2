package release

import (
	"strings"
)

// Artifact names published for the target CLI carry free-form OS and
// architecture keywords rather than the exact GOOS/GOARCH pair, so matching
// is done on keyword tables with a graduated fallback.
var (
	osKeywords = map[string][]string{
		"windows": {"windows", "msvc", "win"},
		"darwin":  {"darwin", "mac", "osx"},
		"linux":   {"linux"},
	}
	archKeywords = map[string][]string{
		"amd64": {"x86_64", "amd64"},
		"arm64": {"arm64", "aarch64"},
	}
	// artifacts belonging to the release but not being the CLI binary
	nonCLIKeywords = []string{"responses", "proxy", "sdk", "npm"}

	// preferred packaging per OS, most preferred first
	packagingPreference = map[string][]string{
		"windows": {".zip", ".tar.gz", ".tar", ".zst"},
		"darwin":  {".tar.gz", ".zip", ".tar", ".zst"},
		"linux":   {".tar.gz", ".tar", ".zst", ".zip"},
	}
	defaultPackagingPreference = []string{".zip", ".tar.gz", ".tar", ".zst"}
)

// SelectArtifact picks the best matching artifact for the given OS and
// architecture (GOOS/GOARCH values). It returns nil when the release has no
// artifact usable on this machine.
func SelectArtifact(artifacts []Artifact, goos, goarch string) *Artifact {
	cli := filterCLIArtifacts(artifacts)

	// most specific group first, then relax arch, then the CLI filter
	groups := [][]Artifact{
		filterArtifacts(cli, goos, goarch),
		filterArtifacts(artifacts, goos, goarch),
		filterArtifacts(cli, goos, ""),
		filterArtifacts(artifacts, goos, ""),
	}
	for _, group := range groups {
		if len(group) > 0 {
			best := bestPackaging(group, goos)
			return &best
		}
	}
	return nil
}

// IsCommandName reports whether a file name inside an artifact looks like
// the command binary: the command name itself or prefixed by it, excluding
// the companion tools shipped in the same archive.
func IsCommandName(name, cmd string) bool {
	lower := strings.ToLower(name)
	lower = strings.TrimSuffix(lower, ".exe")
	for _, keyword := range nonCLIKeywords {
		if strings.Contains(lower, keyword) {
			return false
		}
	}
	return lower == cmd || strings.HasPrefix(lower, cmd+"-")
}

func filterCLIArtifacts(artifacts []Artifact) []Artifact {
	result := make([]Artifact, 0, len(artifacts))
	for _, artifact := range artifacts {
		name := strings.ToLower(artifact.Name)
		if name == "" || containsAny(name, nonCLIKeywords) {
			continue
		}
		result = append(result, artifact)
	}
	return result
}

func filterArtifacts(artifacts []Artifact, goos, goarch string) []Artifact {
	result := make([]Artifact, 0, len(artifacts))
	for _, artifact := range artifacts {
		name := strings.ToLower(artifact.Name)
		if !containsAny(name, osKeywords[goos]) {
			continue
		}
		if goarch != "" && !containsAny(name, archKeywords[goarch]) {
			continue
		}
		result = append(result, artifact)
	}
	return result
}

func bestPackaging(artifacts []Artifact, goos string) Artifact {
	preferred, ok := packagingPreference[goos]
	if !ok {
		preferred = defaultPackagingPreference
	}
	score := func(artifact Artifact) int {
		name := strings.ToLower(artifact.Name)
		for i, ext := range preferred {
			if strings.HasSuffix(name, ext) {
				return len(preferred) - i
			}
		}
		return 0
	}

	best := artifacts[0]
	for _, artifact := range artifacts[1:] {
		if score(artifact) > score(best) {
			best = artifact
		}
	}
	return best
}

func containsAny(name string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}
