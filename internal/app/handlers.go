package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GevorkovG/go-qrcodes/internal/httpjson"
	"github.com/GevorkovG/go-qrcodes/internal/objects"
	"github.com/GevorkovG/go-qrcodes/internal/qrimage"
	"github.com/GevorkovG/go-qrcodes/internal/storage"
	"github.com/GevorkovG/go-qrcodes/internal/urlcodec"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// createRequest тело POST /qr-codes/.
type createRequest struct {
	URL  string `json:"url"`
	Size *int   `json:"size,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type statsResponse struct {
	QRCodes int `json:"qr_codes"`
}

// CreateQRCode POST /qr-codes/: 201 при создании, 200 если QR-код уже есть.
func (a *App) CreateQRCode(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		zap.L().Debug("cannot decode request JSON body", zap.Error(err))
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	size := qrimage.DefaultSize
	if req.Size != nil {
		size = *req.Size
	}

	qr, created, err := a.Create(r.Context(), req.URL, size)
	if err != nil {
		a.writeAppError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	httpjson.Write(w, status, qr)
}

// ListQRCodes GET /qr-codes/: все QR-коды, пустой массив для пустого хранилища.
func (a *App) ListQRCodes(w http.ResponseWriter, r *http.Request) {
	entries, err := a.List(r.Context())
	if err != nil {
		a.writeAppError(w, err)
		return
	}

	resp := make([]objects.QRCode, 0, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			resp = append(resp, objects.QRCode{
				Message: msgCorrupt,
				Links:   e.Links,
				Error:   e.Err.Error(),
			})
			continue
		}
		resp = append(resp, objects.QRCode{
			Message:   msgAvailable,
			QRCodeURL: e.URL,
			Links:     e.Links,
		})
	}

	httpjson.Write(w, http.StatusOK, resp)
}

// DeleteQRCode DELETE /qr-codes/{filename}: 204 либо 404.
func (a *App) DeleteQRCode(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	if err := a.Delete(r.Context(), filename); err != nil {
		a.writeAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Token POST /token: обмен имени и пароля администратора (form) на bearer-токен.
func (a *App) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid form")
		return
	}

	user := r.PostForm.Get("username")
	if err := a.admin.Authenticate(user, r.PostForm.Get("password")); err != nil {
		zap.L().Warn("token request rejected", zap.String("username", user))
		w.Header().Set("WWW-Authenticate", "Bearer")
		httpjson.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := a.signer.BuildJWTString(user)
	if err != nil {
		zap.L().Error("failed to sign token", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpjson.Write(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Download GET /{download_folder}/{filename}: PNG из хранилища.
func (a *App) Download(w http.ResponseWriter, r *http.Request) {
	data, err := a.Storage.Read(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		a.writeAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		zap.L().Debug("failed to write png", zap.Error(err))
	}
}

func (a *App) Ping(w http.ResponseWriter, r *http.Request) {
	if err := a.Storage.Ping(); err != nil {
		zap.L().Error("storage ping failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// GetStats GET /api/internal/stats: число QR-кодов. Доступ ограничивает middleware.TrustedSubnet.
func (a *App) GetStats(w http.ResponseWriter, r *http.Request) {
	n, err := a.Count(r.Context())
	if err != nil {
		a.writeAppError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, statsResponse{QRCodes: n})
}

// writeAppError отображает доменные ошибки в HTTP-статусы.
func (a *App) writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, urlcodec.ErrInvalidURL), errors.Is(err, qrimage.ErrInvalidSize):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidName):
		httpjson.Error(w, http.StatusNotFound, storage.ErrNotFound.Error())
	case errors.Is(err, context.Canceled):
		zap.L().Debug("request canceled", zap.Error(err))
		w.WriteHeader(httpjson.StatusClientClosedRequest)
	default:
		zap.L().Error("request failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
