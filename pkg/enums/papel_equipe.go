package enums

import "fmt"

// PapelEquipe is the optional per-team role override carried by a
// team membership. It may differ from the member's global Papel.
type PapelEquipe string

const (
	PapelEquipeSuperAdmin PapelEquipe = "super_admin"
	PapelEquipeAdmin      PapelEquipe = "admin"
	PapelEquipeGerente    PapelEquipe = "gerente"
	PapelEquipeMembro     PapelEquipe = "membro"
)

var validPapeisEquipe = []PapelEquipe{
	PapelEquipeSuperAdmin,
	PapelEquipeAdmin,
	PapelEquipeGerente,
	PapelEquipeMembro,
}

// String implements fmt.Stringer.
func (p PapelEquipe) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PapelEquipe.
func (p PapelEquipe) IsValid() bool {
	for _, candidate := range validPapeisEquipe {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePapelEquipe converts raw input into a PapelEquipe.
func ParsePapelEquipe(value string) (PapelEquipe, error) {
	for _, candidate := range validPapeisEquipe {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid papel na equipe %q", value)
}
