package validate

import (
	"testing"
)

type cadastro struct {
	Nome  string `json:"nome" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=6"`
}

func TestStructOK(t *testing.T) {
	fields := Struct(cadastro{Nome: "Ana", Email: "ana@x.com", Senha: "abcdef"})
	if len(fields) != 0 {
		t.Fatalf("payload válido não deveria listar campos: %v", fields)
	}
}

func TestStructReportsJSONNames(t *testing.T) {
	fields := Struct(cadastro{Email: "naoeemail", Senha: "abc"})

	want := map[string]bool{"nome": true, "email": true, "senha": true}
	if len(fields) != len(want) {
		t.Fatalf("esperados %d campos, veio %v", len(want), fields)
	}
	for _, f := range fields {
		if !want[f] {
			t.Fatalf("campo inesperado %q (nomes devem ser os do JSON)", f)
		}
	}
}
