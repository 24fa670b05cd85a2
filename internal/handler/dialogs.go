package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/golden-hive/internal/model"
)

type dialogResponse struct {
	Handled      bool   `json:"handled"`
	Dialog       string `json:"dialog"`
	ScrollLocked bool   `json:"scrollLocked"`
}

type clickRequest struct {
	Classes []string `json:"classes"`
}

type keyRequest struct {
	Key string `json:"key"`
}

func (h *Handler) dialogState(w http.ResponseWriter, r *http.Request, handled bool) {
	p, _ := h.page(w, r)
	s := p.Snapshot(r.Context())
	h.writeJSON(w, http.StatusOK, dialogResponse{
		Handled:      handled,
		Dialog:       s.Dialog,
		ScrollLocked: s.ScrollLocked,
	})
}

// OpenDialog открывает окно по идентификатору. Неизвестное окно — 404.
func (h *Handler) OpenDialog(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	if !p.OpenDialog(chi.URLParam(r, "id")) {
		h.writeJSON(w, http.StatusNotFound, errorResponse{
			Notice: Notice{Type: NoticeError, Message: "Окно не найдено"},
		})
		return
	}
	h.dialogState(w, r, true)
}

// CloseDialogs закрывает все окна.
func (h *Handler) CloseDialogs(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}
	p.CloseDialogs()
	h.dialogState(w, r, true)
}

// Click обрабатывает клик по фону или крестику окна.
func (h *Handler) Click(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	var req clickRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.dialogState(w, r, p.Click(req.Classes))
}

// Key обрабатывает нажатие клавиши на странице.
func (h *Handler) Key(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	var req keyRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.dialogState(w, r, p.Key(req.Key))
}

type profileResponse struct {
	Profile model.Profile `json:"profile"`
	Notice  *Notice       `json:"notice,omitempty"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register регистрирует посетителя.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	account, err := p.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, profileResponse{
		Profile: p.Profile(r.Context()),
		Notice:  noticef(NoticeSuccess, "Добро пожаловать, %s! 🍯", account.Name),
	})
}

// Login выполняет вход.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	account, err := p.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, profileResponse{
		Profile: p.Profile(r.Context()),
		Notice:  noticef(NoticeSuccess, "С возвращением, %s! 🍯", account.Name),
	})
}

// Logout завершает сессию.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}

	p.Logout(r.Context())
	h.writeJSON(w, http.StatusOK, profileResponse{
		Profile: p.Profile(r.Context()),
		Notice:  &Notice{Type: NoticeInfo, Message: "Вы вышли из аккаунта"},
	})
}

// Me возвращает данные профиля.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := h.page(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, profileResponse{Profile: p.Profile(r.Context())})
}
