package types

import (
	"strings"
)

// ExtensionLookup is a set of file extensions, each including the leading '.'
type ExtensionLookup map[string]struct{}

func NewExtensionLookup(extensions []string) ExtensionLookup {
	lookup := make(ExtensionLookup)
	for _, ext := range extensions {
		lookup[strings.ToLower(ext)] = struct{}{}
	}
	return lookup
}

func (l ExtensionLookup) IsValid(path string) bool {
	// empty lookup means all extensions are valid
	if len(l) == 0 {
		return true
	}

	// match on suffix so multi part extensions such as '.log.gz' are supported
	lower := strings.ToLower(path)
	for ext := range l {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
