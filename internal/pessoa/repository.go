package pessoa

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

const pessoaColumns = `id, nome, telefone, email, senha_hash, latitude, longitude, tipo_residuo, quantidade_kg, observacoes, created_at`

// Repository encapsula as consultas de pessoas físicas.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create insere o registro e devolve a linha persistida.
func (r *Repository) Create(ctx context.Context, p Pessoa) (Pessoa, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `
        INSERT INTO pessoas_fisicas
            (nome, telefone, email, senha_hash, latitude, longitude, tipo_residuo, quantidade_kg, observacoes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING `+pessoaColumns,
		p.Nome, p.Telefone, p.Email, p.SenhaHash, p.Latitude, p.Longitude, p.TipoResiduo, p.QuantidadeKg, p.Observacoes)

	return scanPessoa(row)
}

// List retorna a página pedida, mais recentes primeiro, e o total geral.
func (r *Repository) List(ctx context.Context, page, limit int) ([]Pessoa, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	offset := (page - 1) * limit

	rows, err := r.db.Query(ctx, `
        SELECT `+pessoaColumns+`
        FROM pessoas_fisicas
        ORDER BY created_at DESC
        OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []Pessoa{}
	for rows.Next() {
		p, err := scanPessoa(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pessoas_fisicas`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (Pessoa, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+pessoaColumns+` FROM pessoas_fisicas WHERE id = $1`, id)
	return scanPessoa(row)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (Pessoa, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+pessoaColumns+` FROM pessoas_fisicas WHERE email = $1`, email)
	return scanPessoa(row)
}

// Update aplica somente os campos presentes no patch. A lista SET é
// montada a partir de nomes de coluna fixos; valores sempre via bind.
func (r *Repository) Update(ctx context.Context, id int64, patch Patch) (Pessoa, error) {
	sets := make([]string, 0, 9)
	args := make([]any, 0, 10)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Has("nome") && patch.Nome != nil {
		add("nome", *patch.Nome)
	}
	if patch.Has("telefone") {
		add("telefone", patch.Telefone)
	}
	if patch.Has("email") && patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Has("latitude") {
		add("latitude", patch.Latitude)
	}
	if patch.Has("longitude") {
		add("longitude", patch.Longitude)
	}
	if patch.Has("tipoResiduo") {
		add("tipo_residuo", patch.TipoResiduo)
	}
	if patch.Has("quantidadeKg") {
		add("quantidade_kg", patch.QuantidadeKg)
	}
	if patch.Has("observacoes") {
		add("observacoes", patch.Observacoes)
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
	query := fmt.Sprintf(`UPDATE pessoas_fisicas SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), pessoaColumns)

	row := r.db.QueryRow(ctx, query, args...)
	return scanPessoa(row)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM pessoas_fisicas WHERE id = $1`, id)
	return err
}

// Contato devolve a projeção restrita a empresas autenticadas.
func (r *Repository) Contato(ctx context.Context, id int64) (Contato, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var c Contato
	err := r.db.QueryRow(ctx, `SELECT id, nome, telefone, email FROM pessoas_fisicas WHERE id = $1`, id).
		Scan(&c.ID, &c.Nome, &c.Telefone, &c.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Contato{}, repo.ErrNotFound
		}
		return Contato{}, err
	}
	return c, nil
}

// Counts retorna total de pessoas e quantas têm ambas as coordenadas.
func (r *Repository) Counts(ctx context.Context) (total int64, comCoordenadas int64, err error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	err = r.db.QueryRow(ctx, `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE latitude IS NOT NULL AND longitude IS NOT NULL)
        FROM pessoas_fisicas`).Scan(&total, &comCoordenadas)
	return total, comCoordenadas, err
}

func scanPessoa(row pgx.Row) (Pessoa, error) {
	var p Pessoa
	err := row.Scan(&p.ID, &p.Nome, &p.Telefone, &p.Email, &p.SenhaHash,
		&p.Latitude, &p.Longitude, &p.TipoResiduo, &p.QuantidadeKg, &p.Observacoes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Pessoa{}, repo.ErrNotFound
		}
		return Pessoa{}, err
	}
	return p, nil
}
