package empresa

import (
	"encoding/json"
	"time"
)

// Empresa representa empresa coletora de recicláveis. SenhaHash nunca é
// serializado em respostas.
type Empresa struct {
	ID          int64     `json:"id"`
	RazaoSocial string    `json:"razaoSocial"`
	NomeContato string    `json:"nomeContato"`
	Telefone    string    `json:"telefone"`
	Email       string    `json:"email"`
	SenhaHash   string    `json:"-"`
	Cnpj        *string   `json:"cnpj"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateInput é o payload de cadastro.
type CreateInput struct {
	RazaoSocial string  `json:"razaoSocial" validate:"required"`
	NomeContato string  `json:"nomeContato" validate:"required"`
	Telefone    string  `json:"telefone" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Senha       string  `json:"senha" validate:"required,min=6"`
	Cnpj        *string `json:"cnpj"`
}

// Patch carrega uma atualização parcial; mesma semântica do patch de
// pessoas: chave ausente não toca a coluna, null zera apenas anuláveis.
type Patch struct {
	RazaoSocial *string
	NomeContato *string
	Telefone    *string
	Email       *string
	Cnpj        *string
	Senha       *string

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
		case "razaoSocial":
			err = json.Unmarshal(val, &p.RazaoSocial)
		case "nomeContato":
			err = json.Unmarshal(val, &p.NomeContato)
		case "telefone":
			err = json.Unmarshal(val, &p.Telefone)
		case "email":
			err = json.Unmarshal(val, &p.Email)
		case "cnpj":
			err = json.Unmarshal(val, &p.Cnpj)
		case "senha":
			err = json.Unmarshal(val, &p.Senha)
		default:
			continue
		}
		if err != nil {
			return err
		}
		p.present[key] = true
	}

	return nil
}
