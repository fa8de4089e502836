package empresa

import (
	"context"
	"strings"

	"github.com/ecocoleta/api/internal/auth"
)

// RepositoryProvider é o contrato de persistência usado pelo serviço.
type RepositoryProvider interface {
	Create(ctx context.Context, e Empresa) (Empresa, error)
	List(ctx context.Context) ([]Empresa, error)
	GetByID(ctx context.Context, id int64) (Empresa, error)
	GetByEmail(ctx context.Context, email string) (Empresa, error)
	Update(ctx context.Context, id int64, patch Patch) (Empresa, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// Service concentra as regras de negócio de empresas.
type Service struct {
	repo RepositoryProvider
}

func NewService(repo RepositoryProvider) *Service {
	return &Service{repo: repo}
}

// Create gera o hash da senha e persiste o cadastro.
func (s *Service) Create(ctx context.Context, input CreateInput) (Empresa, error) {
	hash, err := auth.Hash(input.Senha)
	if err != nil {
		return Empresa{}, err
	}

	return s.repo.Create(ctx, Empresa{
		RazaoSocial: strings.TrimSpace(input.RazaoSocial),
		NomeContato: strings.TrimSpace(input.NomeContato),
		Telefone:    strings.TrimSpace(input.Telefone),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		SenhaHash:   hash,
		Cnpj:        input.Cnpj,
	})
}

func (s *Service) List(ctx context.Context) ([]Empresa, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Empresa, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Empresa, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Update re-hasheia a senha quando presente e não vazia e aplica o patch.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (Empresa, error) {
	if patch.Senha != nil && *patch.Senha != "" {
		hash, err := auth.Hash(*patch.Senha)
		if err != nil {
			return Empresa{}, err
		}
		patch.SenhaHash = &hash
	}
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		patch.Email = &email
	}

	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
