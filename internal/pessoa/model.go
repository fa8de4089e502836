package pessoa

import (
	"encoding/json"
	"time"
)

// Pessoa representa pessoa física com resíduos recicláveis para coleta.
// SenhaHash nunca é serializado em respostas.
type Pessoa struct {
	ID           int64     `json:"id"`
	Nome         string    `json:"nome"`
	Telefone     *string   `json:"telefone"`
	Email        string    `json:"email"`
	SenhaHash    string    `json:"-"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	TipoResiduo  *string   `json:"tipoResiduo"`
	QuantidadeKg *float64  `json:"quantidadeKg"`
	Observacoes  *string   `json:"observacoes"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Contato é a projeção liberada apenas para empresas autenticadas.
type Contato struct {
	ID       int64   `json:"id"`
	Nome     string  `json:"nome"`
	Telefone *string `json:"telefone"`
	Email    string  `json:"email"`
}

// CreateInput é o payload de cadastro.
type CreateInput struct {
	Nome         string   `json:"nome" validate:"required"`
	Telefone     *string  `json:"telefone"`
	Email        string   `json:"email" validate:"required,email"`
	Senha        string   `json:"senha" validate:"required,min=6"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	TipoResiduo  *string  `json:"tipoResiduo"`
	QuantidadeKg *float64 `json:"quantidadeKg"`
	Observacoes  *string  `json:"observacoes"`
}

// Paged é a resposta de listagem paginada.
type Paged struct {
	Items []Pessoa `json:"items"`
	Total int64    `json:"total"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
}

// Patch carrega uma atualização parcial. Campo ausente no JSON não é
// tocado; campo presente com null zera colunas anuláveis. A distinção
// vem do conjunto de chaves do objeto bruto.
type Patch struct {
	Nome         *string
	Telefone     *string
	Email        *string
	Latitude     *float64
	Longitude    *float64
	TipoResiduo  *string
	QuantidadeKg *float64
	Observacoes  *string
	Senha        *string

	// SenhaHash é preenchido pelo serviço quando Senha está presente.
	SenhaHash *string `json:"-"`

	present map[string]bool
}

// Has informa se a chave veio no corpo da requisição.
func (p *Patch) Has(field string) bool {
	return p.present[field]
}

func (p *Patch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.present = make(map[string]bool, len(raw))

	for key, val := range raw {
		var err error
		switch key {
		case "nome":
			err = json.Unmarshal(val, &p.Nome)
		case "telefone":
			err = json.Unmarshal(val, &p.Telefone)
		case "email":
			err = json.Unmarshal(val, &p.Email)
		case "latitude":
			err = json.Unmarshal(val, &p.Latitude)
		case "longitude":
			err = json.Unmarshal(val, &p.Longitude)
		case "tipoResiduo":
			err = json.Unmarshal(val, &p.TipoResiduo)
		case "quantidadeKg":
			err = json.Unmarshal(val, &p.QuantidadeKg)
		case "observacoes":
			err = json.Unmarshal(val, &p.Observacoes)
		case "senha":
			err = json.Unmarshal(val, &p.Senha)
		default:
			// chaves desconhecidas são ignoradas
			continue
		}
		if err != nil {
			return err
		}
		p.present[key] = true
	}

	return nil
}
