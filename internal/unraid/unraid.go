// Package unraid implements the binding of textual volume identifiers to
// their Unraid mountpoints. It validates that a given identifier names an
// existing, mounted array disk or pool and rejects impossible pairings. The
// package only ever reads from the system.
package unraid

import (
	"os"
	"regexp"
)

// osProvider defines methods needed to read a filesystem of the operating
// system.
type osProvider interface {
	Stat(name string) (os.FileInfo, error)
}

// Handler is the principal implementation for volume identification.
type Handler struct {
	osHandler   osProvider
	basePath    string
	diskPattern *regexp.Regexp
	pools       map[string]struct{}
}

// NewHandler returns a pointer to a new [Handler]. Volumes are expected
// mounted directly under basePath; poolNames are accepted as identifiers
// besides the numbered array disks.
func NewHandler(osHandler osProvider, basePath string, poolNames []string) *Handler {
	pools := make(map[string]struct{}, len(poolNames))
	for _, name := range poolNames {
		pools[name] = struct{}{}
	}

	return &Handler{
		osHandler:   osHandler,
		basePath:    basePath,
		diskPattern: regexp.MustCompile(PatternDisks),
		pools:       pools,
	}
}
