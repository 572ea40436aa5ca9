package ioload

import (
	"os"
	"slices"
	"strings"

	"github.com/gnames/cnpjdb/pkg/registry"
)

// partSuffix marks unfinished extraction outputs.
const partSuffix = ".part"

// Candidates lists files of dir that wait to be loaded: regular files
// that are not loaded already, not partial outputs and not the manifest.
// Files of parent tables come first, unmapped files last.
func Candidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, DirMissingError(dir, err)
	}

	var res []string
	for _, v := range entries {
		name := v.Name()
		switch {
		case !v.Type().IsRegular():
			continue
		case registry.IsLoaded(name):
			continue
		case strings.HasSuffix(name, partSuffix):
			continue
		case strings.HasPrefix(name, ManifestName):
			continue
		}
		res = append(res, name)
	}

	slices.SortStableFunc(res, func(a, b string) int {
		return tableRank(a) - tableRank(b)
	})
	return res, nil
}

func tableRank(file string) int {
	tbl, ok := registry.TableFor(file)
	if !ok {
		return len(registry.Tables())
	}
	for i, v := range registry.Tables() {
		if v.Name == tbl.Name {
			return i
		}
	}
	return len(registry.Tables())
}
