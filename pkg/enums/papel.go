package enums

import "fmt"

// Papel represents a user's global permissions role.
type Papel string

const (
	PapelSuperAdmin   Papel = "super_admin"
	PapelAdmin        Papel = "admin"
	PapelGerente      Papel = "gerente"
	PapelVisualizador Papel = "visualizador"
)

var validPapeis = []Papel{
	PapelSuperAdmin,
	PapelAdmin,
	PapelGerente,
	PapelVisualizador,
}

// rankByPapel orders the roles: a higher rank grants every permission
// of the ranks below it.
var rankByPapel = map[Papel]int{
	PapelVisualizador: 1,
	PapelGerente:      2,
	PapelAdmin:        3,
	PapelSuperAdmin:   4,
}

// String implements fmt.Stringer.
func (p Papel) String() string {
	return string(p)
}

// IsValid reports whether the value is a known Papel.
func (p Papel) IsValid() bool {
	_, ok := rankByPapel[p]
	return ok
}

// AtLeast reports whether the role grants at least the required level.
// Unknown roles never satisfy any level.
func (p Papel) AtLeast(required Papel) bool {
	have, ok := rankByPapel[p]
	if !ok {
		return false
	}
	want, ok := rankByPapel[required]
	if !ok {
		return false
	}
	return have >= want
}

// ParsePapel converts raw input into a Papel.
func ParsePapel(value string) (Papel, error) {
	for _, candidate := range validPapeis {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid papel %q", value)
}
