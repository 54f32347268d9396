package bundler

import (
	"regexp"
)

// KeyPrefix prefixes the cache key of every module artifact.
const KeyPrefix = "module:"

// assetKeyPrefix prefixes the cache cell holding an emitted asset's hash.
const assetKeyPrefix = "asset:"

var requirePattern = regexp.MustCompile(`require\(\s*["'](\.{1,2}/[^"']+)["']\s*\)`)

// Module is the cached artifact of one built source file.
type Module struct {
	// Resource is the absolute path of the source file.
	Resource string
	// Requests are the relative require requests in source order, unresolved.
	Requests []string
	// Source is the file content.
	Source string
	// BuiltAt is when the build of this module started, in milliseconds since the Unix epoch.
	BuiltAt int64
}

// ModuleKey returns the cache key for the module at path.
func ModuleKey(path string) string {
	return KeyPrefix + path
}

// parseRequires returns every relative require request in src, in order, without duplicates.
func parseRequires(src []byte) []string {
	matches := requirePattern.FindAllSubmatch(src, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	requests := make([]string, 0, len(matches))
	for _, m := range matches {
		req := string(m[1])
		if _, dup := seen[req]; dup {
			continue
		}
		seen[req] = struct{}{}
		requests = append(requests, req)
	}
	return requests
}
