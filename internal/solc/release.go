package solc

import (
	"cmp"
	"runtime"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const DefaultBinariesUrl = "https://binaries.soliditylang.org"

// Release describes a single solc build known to the release manifest.
type Release struct {
	// Version is the short version, e.g. "0.8.20".
	Version string `json:"version"`
	// Build is the build metadata, e.g. "commit.a1b79de6".
	Build string `json:"build"`
	// LongVersion is the version with build metadata, e.g. "0.8.20+commit.a1b79de6".
	LongVersion string `json:"longVersion"`
	// Artifact is the file name of the build artifact in the manifest directory.
	Artifact string `json:"artifact,omitempty"`
	Sha256   string `json:"sha256,omitempty"`
}

// BuildId returns the identifier the build artifact is derived from, e.g. "v0.8.20+commit.a1b79de6".
func (r *Release) BuildId() string {
	return "v" + r.LongVersion
}

// FullVersion is the version string block explorers expect for verification.
func (r *Release) FullVersion() string {
	return r.BuildId()
}

// Manifest mirrors list.json published next to solc binaries.
type Manifest struct {
	Builds        []ManifestBuild   `json:"builds"`
	Releases      map[string]string `json:"releases"`
	LatestRelease string            `json:"latestRelease"`
}

type ManifestBuild struct {
	Path        string `json:"path"`
	Version     string `json:"version"`
	Prerelease  string `json:"prerelease,omitempty"`
	Build       string `json:"build"`
	LongVersion string `json:"longVersion"`
	Keccak256   string `json:"keccak256"`
	Sha256      string `json:"sha256"`
}

// ReleasesMap builds the short version -> release map. Releases without a matching build entry
// get their long version from the artifact name ("solc-linux-amd64-v0.8.20+commit.a1b79de6").
func (m *Manifest) ReleasesMap() map[string]*Release {
	builds := make(map[string]*ManifestBuild, len(m.Builds))
	for i := range m.Builds {
		builds[m.Builds[i].Path] = &m.Builds[i]
	}

	res := make(map[string]*Release, len(m.Releases))
	for version, artifact := range m.Releases {
		r := &Release{Version: version, Artifact: artifact}
		if b, ok := builds[artifact]; ok {
			r.Build = b.Build
			r.LongVersion = b.LongVersion
			r.Sha256 = b.Sha256
		} else {
			r.LongVersion = longVersionFromArtifact(version, artifact)
			if _, build, found := strings.Cut(r.LongVersion, "+"); found {
				r.Build = build
			}
		}
		if r.LongVersion == "" {
			r.LongVersion = version
		}
		res[version] = r
	}
	return res
}

func longVersionFromArtifact(version, artifact string) string {
	idx := strings.LastIndex(artifact, "-v"+version)
	if idx < 0 {
		return ""
	}
	long := artifact[idx+2:]
	for _, ext := range []string{".exe", ".js", ".zip"} {
		long = strings.TrimSuffix(long, ext)
	}
	return long
}

// Platform returns the binaries.soliditylang.org directory for the current OS.
func Platform() string {
	switch runtime.GOOS {
	case "linux":
		return "linux-amd64"
	case "darwin":
		return "macosx-amd64"
	case "windows":
		return "windows-amd64"
	}
	return "wasm"
}

func DefaultManifestUrl() string {
	return DefaultBinariesUrl + "/" + Platform() + "/list.json"
}

// SortNewestFirst orders versions by semver, newest first. Unparsable versions go last.
func SortNewestFirst(versions []string) {
	parsed := make(map[string]*semver.Version, len(versions))
	for _, v := range versions {
		if sv, err := semver.NewVersion(v); err == nil {
			parsed[v] = sv
		}
	}
	slices.SortStableFunc(versions, func(a, b string) int {
		va, okA := parsed[a]
		vb, okB := parsed[b]
		switch {
		case okA && okB:
			return vb.Compare(va)
		case okA:
			return -1
		case okB:
			return 1
		}
		return cmp.Compare(a, b)
	})
}

// NormalizeVersion strips the optional "v" prefix and build metadata from a requested version.
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	version = strings.TrimPrefix(version, "v")
	if short, _, found := strings.Cut(version, "+"); found {
		version = short
	}
	return version
}
