// Package catalog discovers bundle files on disk and groups them by the
// naming conventions of the game's asset set.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Asset is one discovered bundle file.
type Asset struct {
	Name     string // base name without extension, e.g. DRAGON0
	Path     string
	Category string
}

// Scan finds every bundle file directly under dir (extensions .mcb and
// .mcb.bin), sorted by name.
func Scan(dir string) ([]Asset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: scan %s: %w", dir, err)
	}
	var assets []Asset
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := bundleName(e.Name())
		if !ok {
			continue
		}
		assets = append(assets, Asset{
			Name:     name,
			Path:     filepath.Join(dir, e.Name()),
			Category: Categorize(name),
		})
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets, nil
}

func bundleName(filename string) (string, bool) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".mcb.bin"):
		return filename[:len(filename)-8], true
	case strings.HasSuffix(lower, ".mcb"):
		return filename[:len(filename)-4], true
	}
	return "", false
}

// Categorize maps an asset name to its display group.
func Categorize(name string) string {
	n := strings.ToUpper(name)
	switch {
	case strings.HasPrefix(n, "DRAGON"), strings.HasPrefix(n, "C_DRA"), strings.HasPrefix(n, "RIDER"):
		return "Dragons"
	case n == "EDGE", n == "AZEL":
		return "Characters"
	case strings.HasPrefix(n, "FLD_"):
		return "Fields"
	case hasAnyPrefix(n, "X_A_", "X_E_", "X_F_", "X_G_", "Z_A_", "Z_B_", "Z_E_", "Z_F_"):
		return "NPCs"
	case isMapName(n):
		return "Maps"
	case strings.Contains(n, "OBJ"):
		return "Objects"
	case strings.HasSuffix(n, "_OW"):
		return "Overworld"
	default:
		return "Other"
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// isMapName matches names ending in MP or MP plus a digit, D, or N.
func isMapName(n string) bool {
	if !strings.Contains(n, "MP") {
		return false
	}
	if strings.HasSuffix(n, "MP") {
		return true
	}
	if len(n) < 3 {
		return false
	}
	tail := n[len(n)-1]
	return strings.HasSuffix(n[:len(n)-1], "MP") &&
		(tail >= '0' && tail <= '9' || tail == 'D' || tail == 'N')
}
