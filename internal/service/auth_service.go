package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/ecocoleta/api/internal/auth"
	"github.com/ecocoleta/api/internal/empresa"
	"github.com/ecocoleta/api/internal/pessoa"
	"github.com/ecocoleta/api/internal/repo"
)

// ErrInvalidCredentials indica falha na autenticação. A mensagem é a
// mesma para e-mail desconhecido e senha incorreta.
var ErrInvalidCredentials = errors.New("credenciais inválidas")

type pessoaFinder interface {
	GetByEmail(ctx context.Context, email string) (pessoa.Pessoa, error)
}

type empresaFinder interface {
	GetByEmail(ctx context.Context, email string) (empresa.Empresa, error)
}

// AuthService concentra os fluxos de login dos dois tipos de conta.
type AuthService struct {
	pessoas  pessoaFinder
	empresas empresaFinder
	jwt      *auth.JWTManager
}

func NewAuthService(pessoas pessoaFinder, empresas empresaFinder, jwtMgr *auth.JWTManager) *AuthService {
	return &AuthService{pessoas: pessoas, empresas: empresas, jwt: jwtMgr}
}

// JWT expõe o gerenciador de tokens (útil em middlewares).
func (s *AuthService) JWT() *auth.JWTManager {
	return s.jwt
}

// LoginResult é o retorno padrão das autenticações.
type LoginResult struct {
	Token string
	ID    int64
	Nome  string
	Tipo  string
}

// LoginPessoa autentica pessoa física por e-mail e senha.
func (s *AuthService) LoginPessoa(ctx context.Context, email, senha string) (*LoginResult, error) {
	p, err := s.pessoas.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Warn().Msg("login pessoa: e-mail não cadastrado")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.Verify(senha, p.SenhaHash) {
		log.Warn().Msg("login pessoa: senha inválida")
		return nil, ErrInvalidCredentials
	}

	return s.issue(p.ID, p.Nome, auth.TipoPessoa)
}

// LoginEmpresa autentica empresa por e-mail e senha.
func (s *AuthService) LoginEmpresa(ctx context.Context, email, senha string) (*LoginResult, error) {
	e, err := s.empresas.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			log.Warn().Msg("login empresa: e-mail não cadastrado")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.Verify(senha, e.SenhaHash) {
		log.Warn().Msg("login empresa: senha inválida")
		return nil, ErrInvalidCredentials
	}

	return s.issue(e.ID, e.RazaoSocial, auth.TipoEmpresa)
}

func (s *AuthService) issue(id int64, nome, tipo string) (*LoginResult, error) {
	token, err := s.jwt.Generate(id, nome, tipo)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, ID: id, Nome: nome, Tipo: tipo}, nil
}
