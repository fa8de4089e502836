package pessoa

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
	Create(ctx context.Context, input CreateInput) (Pessoa, error)
	List(ctx context.Context, page, limit int) (Paged, error)
	Get(ctx context.Context, id int64) (Pessoa, error)
	Update(ctx context.Context, id int64, patch Patch) (Pessoa, error)
	Delete(ctx context.Context, id int64) error
	Contato(ctx context.Context, id int64) (Contato, error)
}

// Handler expõe os endpoints REST de pessoas físicas.
type Handler struct {
	service ServiceProvider
}

func NewHandler(service ServiceProvider) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes monta as rotas; empresaOnly protege o endpoint de contato.
func (h *Handler) RegisterRoutes(r chi.Router, empresaOnly func(http.Handler) http.Handler) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.With(empresaOnly).Get("/{id}/contato", h.contato)
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
		log.Error().Err(err).Msg("erro ao criar pessoa física")
		writeError(w, http.StatusInternalServerError, "erro ao criar pessoa física")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("erro ao listar pessoas físicas")
		writeError(w, http.StatusInternalServerError, "erro ao listar pessoas físicas")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "pessoa física não encontrada")
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "pessoa física não encontrada")
			return
		}
		log.Error().Err(err).Msg("erro ao recuperar pessoa física")
		writeError(w, http.StatusInternalServerError, "erro ao recuperar pessoa física")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "pessoa física não encontrada")
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
			writeError(w, http.StatusNotFound, "pessoa física não encontrada")
			return
		}
		log.Error().Err(err).Msg("erro ao atualizar pessoa física")
		writeError(w, http.StatusInternalServerError, "erro ao atualizar pessoa física")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "pessoa física não encontrada")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("erro ao remover pessoa física")
		writeError(w, http.StatusInternalServerError, "erro ao remover pessoa física")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) contato(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "contato não encontrado")
		return
	}

	contato, err := h.service.Contato(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "contato não encontrado")
			return
		}
		log.Error().Err(err).Msg("erro ao recuperar contato")
		writeError(w, http.StatusInternalServerError, "erro ao recuperar contato")
		return
	}

	writeJSON(w, http.StatusOK, contato)
}

// validatePatch rejeita null em campos não anuláveis e senha curta.
func validatePatch(patch Patch) []string {
	var fields []string
	if patch.Has("nome") && (patch.Nome == nil || strings.TrimSpace(*patch.Nome) == "") {
		fields = append(fields, "nome")
	}
	if patch.Has("email") && (patch.Email == nil || strings.TrimSpace(*patch.Email) == "") {
		fields = append(fields, "email")
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
