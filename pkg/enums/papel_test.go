package enums

import "testing"

func TestPapelAtLeastOrdering(t *testing.T) {
	if !PapelSuperAdmin.AtLeast(PapelAdmin) {
		t.Fatal("super_admin should satisfy admin")
	}
	if !PapelAdmin.AtLeast(PapelGerente) {
		t.Fatal("admin should satisfy gerente")
	}
	if !PapelGerente.AtLeast(PapelVisualizador) {
		t.Fatal("gerente should satisfy visualizador")
	}
	if !PapelVisualizador.AtLeast(PapelVisualizador) {
		t.Fatal("a role should satisfy itself")
	}

	if PapelVisualizador.AtLeast(PapelGerente) {
		t.Fatal("visualizador must not satisfy gerente")
	}
	if PapelGerente.AtLeast(PapelAdmin) {
		t.Fatal("gerente must not satisfy admin")
	}
	if PapelAdmin.AtLeast(PapelSuperAdmin) {
		t.Fatal("admin must not satisfy super_admin")
	}
}

func TestPapelAtLeastUnknownRoles(t *testing.T) {
	if Papel("director").AtLeast(PapelVisualizador) {
		t.Fatal("unknown role must never satisfy a level")
	}
	if PapelSuperAdmin.AtLeast(Papel("director")) {
		t.Fatal("unknown required level must never be satisfied")
	}
}

func TestParsePapel(t *testing.T) {
	for _, value := range []string{"super_admin", "admin", "gerente", "visualizador"} {
		papel, err := ParsePapel(value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		if papel.String() != value {
			t.Fatalf("expected %q, got %q", value, papel)
		}
	}

	if _, err := ParsePapel("ADMIN"); err == nil {
		t.Fatal("papel values are case sensitive")
	}
	if _, err := ParsePapel(""); err == nil {
		t.Fatal("empty papel must not parse")
	}
}

func TestParseOperacao(t *testing.T) {
	for _, value := range []string{"CREATE", "UPDATE", "DELETE"} {
		op, err := ParseOperacao(value)
		if err != nil {
			t.Fatalf("parse %q: %v", value, err)
		}
		if string(op) != value {
			t.Fatalf("expected %q, got %q", value, op)
		}
	}

	if _, err := ParseOperacao("create"); err == nil {
		t.Fatal("operacao values are upper case only")
	}
}
