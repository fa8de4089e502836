package empresa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecocoleta/api/internal/repo"
)

const dbTimeout = 3 * time.Second

const empresaColumns = `id, razao_social, nome_contato, telefone, email, senha_hash, cnpj, created_at`

// Repository encapsula as consultas de empresas.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, e Empresa) (Empresa, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `
        INSERT INTO empresas (razao_social, nome_contato, telefone, email, senha_hash, cnpj)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING `+empresaColumns,
		e.RazaoSocial, e.NomeContato, e.Telefone, e.Email, e.SenhaHash, e.Cnpj)

	return scanEmpresa(row)
}

// List retorna todas as empresas, mais recentes primeiro.
func (r *Repository) List(ctx context.Context) ([]Empresa, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+empresaColumns+` FROM empresas ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Empresa{}
	for rows.Next() {
		e, err := scanEmpresa(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id int64) (Empresa, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+empresaColumns+` FROM empresas WHERE id = $1`, id)
	return scanEmpresa(row)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (Empresa, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+empresaColumns+` FROM empresas WHERE email = $1`, email)
	return scanEmpresa(row)
}

// Update aplica somente os campos presentes no patch, com SET montado a
// partir de colunas fixas e valores sempre via bind.
func (r *Repository) Update(ctx context.Context, id int64, patch Patch) (Empresa, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Has("razaoSocial") && patch.RazaoSocial != nil {
		add("razao_social", *patch.RazaoSocial)
	}
	if patch.Has("nomeContato") && patch.NomeContato != nil {
		add("nome_contato", *patch.NomeContato)
	}
	if patch.Has("telefone") && patch.Telefone != nil {
		add("telefone", *patch.Telefone)
	}
	if patch.Has("email") && patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Has("cnpj") {
		add("cnpj", patch.Cnpj)
	}
	if patch.SenhaHash != nil {
		add("senha_hash", *patch.SenhaHash)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE empresas SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), empresaColumns)

	row := r.db.QueryRow(ctx, query, args...)
	return scanEmpresa(row)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM empresas WHERE id = $1`, id)
	return err
}

// Count retorna o total de empresas cadastradas.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM empresas`).Scan(&total)
	return total, err
}

func scanEmpresa(row pgx.Row) (Empresa, error) {
	var e Empresa
	err := row.Scan(&e.ID, &e.RazaoSocial, &e.NomeContato, &e.Telefone, &e.Email,
		&e.SenhaHash, &e.Cnpj, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Empresa{}, repo.ErrNotFound
		}
		return Empresa{}, err
	}
	return e, nil
}
