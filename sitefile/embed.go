package sitefile

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed sites/*.yaml
var SitesFS embed.FS

// Load returns the raw bytes of name, preferring a file on disk over the
// embedded samples.
func Load(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return SitesFS.ReadFile(cleanSitePath(name))
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(name)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanSitePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "sitefile/"); ok {
		s = after
	}
	if !strings.HasPrefix(s, "sites/") {
		s = "sites/" + s
	}
	return s
}
