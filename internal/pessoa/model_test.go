package pessoa

import (
	"encoding/json"
	"testing"
)

func TestPatchDistinguishesOmittedFromNull(t *testing.T) {
	var patch Patch
	if err := json.Unmarshal([]byte(`{"telefone": null, "nome": "Ana"}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !patch.Has("telefone") {
		t.Fatal("telefone veio no corpo e deveria constar como presente")
	}
	if patch.Telefone != nil {
		t.Fatal("telefone null deveria resultar em ponteiro nulo")
	}

	if !patch.Has("nome") || patch.Nome == nil || *patch.Nome != "Ana" {
		t.Fatal("nome presente com valor deveria ser decodificado")
	}

	if patch.Has("email") {
		t.Fatal("email omitido não pode constar como presente")
	}
	if patch.Has("senha") {
		t.Fatal("senha omitida não pode constar como presente")
	}
}

func TestPatchIgnoresUnknownKeys(t *testing.T) {
	var patch Patch
	if err := json.Unmarshal([]byte(`{"desconhecido": 1, "observacoes": "sacaria"}`), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if patch.Has("desconhecido") {
		t.Fatal("chave desconhecida não deveria ser registrada")
	}
	if !patch.Has("observacoes") {
		t.Fatal("observacoes deveria constar como presente")
	}
}
