package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ecocoleta/api/internal/service"
)

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
	Tipo string `json:"tipo"`
}

func (h *Handler) loginPessoa(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.auth.LoginPessoa)
}

func (h *Handler) loginEmpresa(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.auth.LoginEmpresa)
}

// login trata os dois fluxos; qualquer falha de credencial vira o mesmo
// 401, sem revelar se o e-mail existe.
func (h *Handler) login(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, email, senha string) (*service.LoginResult, error)) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusUnauthorized, "credenciais inválidas")
		return
	}

	result, err := fn(r.Context(), req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			WriteError(w, http.StatusUnauthorized, "credenciais inválidas")
			return
		}
		log.Error().Err(err).Msg("erro ao autenticar")
		WriteError(w, http.StatusInternalServerError, "erro ao autenticar")
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{
		Token: result.Token,
		User:  loginUser{ID: result.ID, Nome: result.Nome, Tipo: result.Tipo},
	})
}
