package empresa

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/ecocoleta/api/internal/repo"
	"github.com/ecocoleta/api/internal/validate"
)

// ServiceProvider é o contrato consumido pelos handlers HTTP.
type ServiceProvider interface {
	Create(ctx context.Context, input CreateInput) (Empresa, error)
	List(ctx context.Context) ([]Empresa, error)
	Get(ctx context.Context, id int64) (Empresa, error)
	Update(ctx context.Context, id int64, patch Patch) (Empresa, error)
	Delete(ctx context.Context, id int64) error
}

// Handler expõe os endpoints REST de empresas.
type Handler struct {
	service ServiceProvider
}

func NewHandler(service ServiceProvider) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "payload inválido")
		return
	}

	if fields := validate.Struct(input); len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		log.Error().Err(err).Msg("erro ao criar empresa")
		writeError(w, http.StatusInternalServerError, "erro ao criar empresa")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("erro ao listar empresas")
		writeError(w, http.StatusInternalServerError, "erro ao listar empresas")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "empresa não encontrada")
		return
	}

	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "empresa não encontrada")
			return
		}
		log.Error().Err(err).Msg("erro ao recuperar empresa")
		writeError(w, http.StatusInternalServerError, "erro ao recuperar empresa")
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "empresa não encontrada")
		return
	}

	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "payload inválido")
		return
	}

	if fields := validatePatch(patch); len(fields) > 0 {
		writeValidationError(w, fields)
		return
	}

	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "empresa não encontrada")
			return
		}
		log.Error().Err(err).Msg("erro ao atualizar empresa")
		writeError(w, http.StatusInternalServerError, "erro ao atualizar empresa")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "empresa não encontrada")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("erro ao remover empresa")
		writeError(w, http.StatusInternalServerError, "erro ao remover empresa")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validatePatch rejeita null em campos não anuláveis e senha curta.
func validatePatch(patch Patch) []string {
	var fields []string
	for _, check := range []struct {
		key string
		val *string
	}{
		{"razaoSocial", patch.RazaoSocial},
		{"nomeContato", patch.NomeContato},
		{"telefone", patch.Telefone},
		{"email", patch.Email},
	} {
		if patch.Has(check.key) && (check.val == nil || strings.TrimSpace(*check.val) == "") {
			fields = append(fields, check.key)
		}
	}
	if patch.Senha != nil && *patch.Senha != "" && len(*patch.Senha) < 6 {
		fields = append(fields, "senha")
	}
	return fields
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message})
}

func writeValidationError(w http.ResponseWriter, fields []string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"message": "campos obrigatórios ou inválidos: " + strings.Join(fields, ", "),
		"fields":  fields,
	})
}
