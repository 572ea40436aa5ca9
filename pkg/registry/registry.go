// Package registry describes the CNPJ open data set: the kinds of archives
// it consists of, how they relate to each other, and which database table
// receives each extracted file.
//
// The package is pure: no file system, network or database access.
package registry

import (
	"slices"
	"strings"
)

// Role tells how records of an archive take part in referential sampling.
type Role int

const (
	// RoleUnknown is assigned to archives that do not belong to the data set.
	RoleUnknown Role = iota
	// RoleParent records provide the keys other records refer to.
	RoleParent
	// RoleDependent records are valid in a sample only if their key
	// belongs to a parent record.
	RoleDependent
)

func (r Role) String() string {
	switch r {
	case RoleParent:
		return "parent"
	case RoleDependent:
		return "dependent"
	default:
		return "unknown"
	}
}

// Category is a kind of archive published in the data set.
type Category struct {
	// Name is a short identifier used in logs and reports.
	Name string
	// Prefix is the beginning of archive file names of this category.
	Prefix string
	// Role defines how the category participates in sampling.
	Role Role
}

var (
	// Empresas are companies, the parent entity.
	Empresas = Category{Name: "empresas", Prefix: "Empresas", Role: RoleParent}
	// Estabelecimentos are establishments of companies.
	Estabelecimentos = Category{
		Name: "estabelecimentos", Prefix: "Estabelecimentos", Role: RoleDependent,
	}
	// Socios are partners of companies.
	Socios = Category{Name: "socios", Prefix: "Socios", Role: RoleDependent}
)

// Categories returns all known categories, parents first.
func Categories() []Category {
	return []Category{Empresas, Estabelecimentos, Socios}
}

// Classify finds the category of an archive by its file name.
// The second value is false for archives outside of the data set.
func Classify(archiveName string) (Category, bool) {
	for _, c := range Categories() {
		if strings.HasPrefix(archiveName, c.Prefix) {
			return c, true
		}
	}
	return Category{}, false
}

// Group distributes archive names by category. Names inside every group
// are sorted. Unknown names are returned separately.
func Group(names []string) (map[string][]string, []string) {
	res := make(map[string][]string)
	var unknown []string
	for _, v := range names {
		c, ok := Classify(v)
		if !ok {
			unknown = append(unknown, v)
			continue
		}
		res[c.Name] = append(res[c.Name], v)
	}
	for k := range res {
		slices.Sort(res[k])
	}
	return res, unknown
}

// Limit keeps at most n first names of every group. Non-positive n keeps
// everything.
func Limit(groups map[string][]string, n int) map[string][]string {
	if n <= 0 {
		return groups
	}
	res := make(map[string][]string, len(groups))
	for k, v := range groups {
		if len(v) > n {
			v = v[:n]
		}
		res[k] = v
	}
	return res
}
