package enums

import "fmt"

// Operacao classifies an audited mutation.
type Operacao string

const (
	OperacaoCreate Operacao = "CREATE"
	OperacaoUpdate Operacao = "UPDATE"
	OperacaoDelete Operacao = "DELETE"
)

var validOperacoes = []Operacao{
	OperacaoCreate,
	OperacaoUpdate,
	OperacaoDelete,
}

// String implements fmt.Stringer.
func (o Operacao) String() string {
	return string(o)
}

// IsValid reports whether the value is a known Operacao.
func (o Operacao) IsValid() bool {
	for _, candidate := range validOperacoes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOperacao converts raw input into an Operacao.
func ParseOperacao(value string) (Operacao, error) {
	for _, candidate := range validOperacoes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid operacao %q", value)
}
