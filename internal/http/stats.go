package http

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// PessoaCounter e EmpresaCounter fornecem as agregações do painel.
type PessoaCounter interface {
	Counts(ctx context.Context) (total int64, comCoordenadas int64, err error)
}

type EmpresaCounter interface {
	Count(ctx context.Context) (int64, error)
}

type statsResponse struct {
	EmpresasCount     int64 `json:"empresasCount"`
	UsuariosCount     int64 `json:"usuariosCount"`
	PontosColetaCount int64 `json:"pontosColetaCount"`
}

// getStats agrega totais de empresas, pessoas e pontos plotáveis no mapa
// (pessoas com latitude e longitude preenchidas).
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	empresas, err := h.empresaCounts.Count(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("erro ao agregar empresas")
		WriteError(w, http.StatusInternalServerError, "erro ao carregar estatísticas")
		return
	}

	pessoas, comCoordenadas, err := h.pessoaCounts.Counts(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("erro ao agregar pessoas")
		WriteError(w, http.StatusInternalServerError, "erro ao carregar estatísticas")
		return
	}

	WriteJSON(w, http.StatusOK, statsResponse{
		EmpresasCount:     empresas,
		UsuariosCount:     pessoas,
		PontosColetaCount: comCoordenadas,
	})
}
