package pessoa

import (
	"context"
	"strings"

	"github.com/ecocoleta/api/internal/auth"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// RepositoryProvider é o contrato de persistência usado pelo serviço.
type RepositoryProvider interface {
	Create(ctx context.Context, p Pessoa) (Pessoa, error)
	List(ctx context.Context, page, limit int) ([]Pessoa, int64, error)
	GetByID(ctx context.Context, id int64) (Pessoa, error)
	GetByEmail(ctx context.Context, email string) (Pessoa, error)
	Update(ctx context.Context, id int64, patch Patch) (Pessoa, error)
	Delete(ctx context.Context, id int64) error
	Contato(ctx context.Context, id int64) (Contato, error)
	Counts(ctx context.Context) (total int64, comCoordenadas int64, err error)
}

// Service concentra as regras de negócio de pessoas físicas.
type Service struct {
	repo RepositoryProvider
}

func NewService(repo RepositoryProvider) *Service {
	return &Service{repo: repo}
}

// Create gera o hash da senha e persiste o cadastro.
func (s *Service) Create(ctx context.Context, input CreateInput) (Pessoa, error) {
	hash, err := auth.Hash(input.Senha)
	if err != nil {
		return Pessoa{}, err
	}

	return s.repo.Create(ctx, Pessoa{
		Nome:         strings.TrimSpace(input.Nome),
		Telefone:     input.Telefone,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		SenhaHash:    hash,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		TipoResiduo:  input.TipoResiduo,
		QuantidadeKg: input.QuantidadeKg,
		Observacoes:  input.Observacoes,
	})
}

// List sanitiza a paginação e devolve a página pedida. Valores inválidos
// caem nos defaults; limit acima do teto é reduzido para o teto.
func (s *Service) List(ctx context.Context, page, limit int) (Paged, error) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	items, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return Paged{}, err
	}

	return Paged{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Pessoa, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Pessoa, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// Update re-hasheia a senha quando presente e não vazia e aplica o patch.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (Pessoa, error) {
	if patch.Senha != nil && *patch.Senha != "" {
		hash, err := auth.Hash(*patch.Senha)
		if err != nil {
			return Pessoa{}, err
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

func (s *Service) Contato(ctx context.Context, id int64) (Contato, error) {
	return s.repo.Contato(ctx, id)
}

func (s *Service) Counts(ctx context.Context) (total int64, comCoordenadas int64, err error) {
	return s.repo.Counts(ctx)
}
