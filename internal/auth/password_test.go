package auth

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("abcdef")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if hash == "abcdef" {
		t.Fatal("hash não pode ser a senha em claro")
	}

	if !Verify("abcdef", hash) {
		t.Fatal("senha correta deveria verificar")
	}

	if Verify("abcdeg", hash) {
		t.Fatal("senha incorreta não deveria verificar")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	for _, malformed := range []string{"", "nao-e-um-hash", "$argon2id$v=19$corrompido"} {
		if Verify("abcdef", malformed) {
			t.Fatalf("hash malformado %q não deveria verificar", malformed)
		}
	}
}
