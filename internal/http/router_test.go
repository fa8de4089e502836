package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecocoleta/api/internal/auth"
	"github.com/ecocoleta/api/internal/config"
	"github.com/ecocoleta/api/internal/empresa"
	"github.com/ecocoleta/api/internal/pessoa"
	"github.com/ecocoleta/api/internal/repo"
	"github.com/ecocoleta/api/internal/service"
)

const (
	testSecret   = "segredo-de-teste-com-tamanho-bom-0001"
	testIssuer   = "ecocoleta-api"
	testAudience = "ecocoleta-web"
)

type pessoaStub struct {
	pessoas map[int64]pessoa.Pessoa
	nextID  int64
}

func (s *pessoaStub) Create(ctx context.Context, p pessoa.Pessoa) (pessoa.Pessoa, error) {
	p.ID = s.nextID
	p.CreatedAt = time.Now()
	s.nextID++
	s.pessoas[p.ID] = p
	return p, nil
}

func (s *pessoaStub) List(ctx context.Context, page, limit int) ([]pessoa.Pessoa, int64, error) {
	items := []pessoa.Pessoa{}
	for _, p := range s.pessoas {
		items = append(items, p)
	}
	return items, int64(len(items)), nil
}

func (s *pessoaStub) GetByID(ctx context.Context, id int64) (pessoa.Pessoa, error) {
	p, ok := s.pessoas[id]
	if !ok {
		return pessoa.Pessoa{}, repo.ErrNotFound
	}
	return p, nil
}

func (s *pessoaStub) GetByEmail(ctx context.Context, email string) (pessoa.Pessoa, error) {
	for _, p := range s.pessoas {
		if p.Email == email {
			return p, nil
		}
	}
	return pessoa.Pessoa{}, repo.ErrNotFound
}

func (s *pessoaStub) Update(ctx context.Context, id int64, patch pessoa.Patch) (pessoa.Pessoa, error) {
	p, ok := s.pessoas[id]
	if !ok {
		return pessoa.Pessoa{}, repo.ErrNotFound
	}
	return p, nil
}

func (s *pessoaStub) Delete(ctx context.Context, id int64) error {
	delete(s.pessoas, id)
	return nil
}

func (s *pessoaStub) Contato(ctx context.Context, id int64) (pessoa.Contato, error) {
	p, ok := s.pessoas[id]
	if !ok {
		return pessoa.Contato{}, repo.ErrNotFound
	}
	return pessoa.Contato{ID: p.ID, Nome: p.Nome, Telefone: p.Telefone, Email: p.Email}, nil
}

func (s *pessoaStub) Counts(ctx context.Context) (int64, int64, error) {
	var comCoordenadas int64
	for _, p := range s.pessoas {
		if p.Latitude != nil && p.Longitude != nil {
			comCoordenadas++
		}
	}
	return int64(len(s.pessoas)), comCoordenadas, nil
}

type empresaStub struct {
	empresas map[int64]empresa.Empresa
	nextID   int64
}

func (s *empresaStub) Create(ctx context.Context, e empresa.Empresa) (empresa.Empresa, error) {
	e.ID = s.nextID
	e.CreatedAt = time.Now()
	s.nextID++
	s.empresas[e.ID] = e
	return e, nil
}

func (s *empresaStub) List(ctx context.Context) ([]empresa.Empresa, error) {
	items := []empresa.Empresa{}
	for _, e := range s.empresas {
		items = append(items, e)
	}
	return items, nil
}

func (s *empresaStub) GetByID(ctx context.Context, id int64) (empresa.Empresa, error) {
	e, ok := s.empresas[id]
	if !ok {
		return empresa.Empresa{}, repo.ErrNotFound
	}
	return e, nil
}

func (s *empresaStub) GetByEmail(ctx context.Context, email string) (empresa.Empresa, error) {
	for _, e := range s.empresas {
		if e.Email == email {
			return e, nil
		}
	}
	return empresa.Empresa{}, repo.ErrNotFound
}

func (s *empresaStub) Update(ctx context.Context, id int64, patch empresa.Patch) (empresa.Empresa, error) {
	e, ok := s.empresas[id]
	if !ok {
		return empresa.Empresa{}, repo.ErrNotFound
	}
	return e, nil
}

func (s *empresaStub) Delete(ctx context.Context, id int64) error {
	delete(s.empresas, id)
	return nil
}

func (s *empresaStub) Count(ctx context.Context) (int64, error) {
	return int64(len(s.empresas)), nil
}

func newTestServer() (http.Handler, *pessoaStub, *empresaStub) {
	pessoas := &pessoaStub{pessoas: map[int64]pessoa.Pessoa{}, nextID: 1}
	empresas := &empresaStub{empresas: map[int64]empresa.Empresa{}, nextID: 1}

	pessoaService := pessoa.NewService(pessoas)
	empresaService := empresa.NewService(empresas)
	jwtMgr := auth.NewJWTManager(testSecret, testIssuer, testAudience, time.Hour)
	authService := service.NewAuthService(pessoaService, empresaService, jwtMgr)

	cfg := &config.Config{Port: 8080, JWTTTL: time.Hour}
	return NewRouter(cfg, authService, pessoaService, empresaService), pessoas, empresas
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegisterLoginAndContatoFlow(t *testing.T) {
	h, _, _ := newTestServer()

	// cadastro público de pessoa
	rec := doJSON(t, h, http.MethodPost, "/pessoas", "", map[string]any{
		"nome": "Ana", "email": "ana@x.com", "senha": "abcdef", "telefone": "11988887777",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register pessoa: esperado 201, veio %d: %s", rec.Code, rec.Body.String())
	}

	// login da pessoa
	rec = doJSON(t, h, http.MethodPost, "/auth/login-pessoa", "", map[string]any{
		"email": "ana@x.com", "senha": "abcdef",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login pessoa: esperado 200, veio %d: %s", rec.Code, rec.Body.String())
	}

	var pessoaLogin struct {
		Token string `json:"token"`
		User  struct {
			ID   int64  `json:"id"`
			Nome string `json:"nome"`
			Tipo string `json:"tipo"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &pessoaLogin); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if pessoaLogin.Token == "" || pessoaLogin.User.Tipo != "pessoa" || pessoaLogin.User.Nome != "Ana" {
		t.Fatalf("login pessoa inesperado: %+v", pessoaLogin)
	}

	// contato sem token
	rec = doJSON(t, h, http.MethodGet, "/pessoas/1/contato", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("contato anônimo: esperado 401, veio %d", rec.Code)
	}

	// contato com token de pessoa
	rec = doJSON(t, h, http.MethodGet, "/pessoas/1/contato", pessoaLogin.Token, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("contato como pessoa: esperado 403, veio %d", rec.Code)
	}

	// cadastro e login de empresa
	rec = doJSON(t, h, http.MethodPost, "/empresas", "", map[string]any{
		"razaoSocial": "Recicla Sul Ltda", "nomeContato": "Bruno",
		"telefone": "11999990000", "email": "contato@reciclasul.com", "senha": "abcdef",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register empresa: esperado 201, veio %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/auth/login-empresa", "", map[string]any{
		"email": "contato@reciclasul.com", "senha": "abcdef",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login empresa: esperado 200, veio %d", rec.Code)
	}

	var empresaLogin struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &empresaLogin); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	// contato com token de empresa
	rec = doJSON(t, h, http.MethodGet, "/pessoas/1/contato", empresaLogin.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("contato como empresa: esperado 200, veio %d: %s", rec.Code, rec.Body.String())
	}

	var contato struct {
		Nome     string  `json:"nome"`
		Telefone *string `json:"telefone"`
		Email    string  `json:"email"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &contato); err != nil {
		t.Fatalf("decode contato: %v", err)
	}
	if contato.Nome != "Ana" || contato.Email != "ana@x.com" || contato.Telefone == nil || *contato.Telefone != "11988887777" {
		t.Fatalf("contato inesperado: %+v", contato)
	}

	// contato de pessoa inexistente
	rec = doJSON(t, h, http.MethodGet, "/pessoas/999/contato", empresaLogin.Token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("contato inexistente: esperado 404, veio %d", rec.Code)
	}
}

func TestContatoRejectsBadTokens(t *testing.T) {
	h, _, _ := newTestServer()

	expired, err := auth.NewJWTManager(testSecret, testIssuer, testAudience, -2*time.Minute).
		Generate(1, "Recicla Sul Ltda", auth.TipoEmpresa)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"sem header", ""},
		{"esquema errado", "Basic abc"},
		{"sem prefixo", "abc.def.ghi"},
		{"token lixo", "Bearer lixo"},
		{"empresa expirada", "Bearer " + expired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/pessoas/1/contato", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("esperado 401, veio %d", rec.Code)
			}
		})
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	h, _, _ := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/auth/login-pessoa", "", map[string]any{
		"email": "ninguem@x.com", "senha": "qualquer",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("esperado 401, veio %d", rec.Code)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Message != "credenciais inválidas" {
		t.Fatalf("mensagem deveria ser genérica, veio %q", body.Message)
	}
}

func TestStats(t *testing.T) {
	h, pessoas, empresas := newTestServer()

	lat, lng := -23.55, -46.63
	hash := "$argon2id$v=19$m=65536,t=3,p=1$qualquer$qualquer"

	pessoas.Create(context.Background(), pessoa.Pessoa{Nome: "Ana", Email: "a@x.com", SenhaHash: hash, Latitude: &lat, Longitude: &lng})
	pessoas.Create(context.Background(), pessoa.Pessoa{Nome: "Bia", Email: "b@x.com", SenhaHash: hash, Latitude: &lat, Longitude: &lng})
	pessoas.Create(context.Background(), pessoa.Pessoa{Nome: "Cai", Email: "c@x.com", SenhaHash: hash})
	empresas.Create(context.Background(), empresa.Empresa{RazaoSocial: "E1", Email: "e1@x.com", SenhaHash: hash})
	empresas.Create(context.Background(), empresa.Empresa{RazaoSocial: "E2", Email: "e2@x.com", SenhaHash: hash})

	rec := doJSON(t, h, http.MethodGet, "/stats", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("esperado 200, veio %d", rec.Code)
	}

	var stats struct {
		EmpresasCount     int64 `json:"empresasCount"`
		UsuariosCount     int64 `json:"usuariosCount"`
		PontosColetaCount int64 `json:"pontosColetaCount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.EmpresasCount != 2 || stats.UsuariosCount != 3 || stats.PontosColetaCount != 2 {
		t.Fatalf("stats inesperado: %+v", stats)
	}
}
