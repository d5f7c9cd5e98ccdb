package core

import "github.com/smarty/stager/contracts"

// FilterPlatforms keeps the artifacts whose platform directory is named in
// filter, preserving their original order. An empty filter keeps everything.
func FilterPlatforms(original []contracts.PlatformArtifact, filter []string) (filtered []contracts.PlatformArtifact) {
	if len(filter) == 0 {
		return original
	}
	for _, artifact := range original {
		if contains(filter, artifact.Platform) {
			filtered = append(filtered, artifact)
		}
	}
	return filtered
}

func contains(haystack []string, needle string) bool {
	for _, straw := range haystack {
		if straw == needle {
			return true
		}
	}
	return false
}
