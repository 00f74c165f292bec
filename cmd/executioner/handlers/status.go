// Package handlers содержит HTTP-обработчики Executioner.
//
// Все эндпоинты:
//
//	GET /    — статус сервиса
//
// Ответы в формате JSON. Эндпоинт не зависит от результата startup probe.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// StatusOnline — значение поля "status" в ответе GET /.
const StatusOnline = "SentinelStream Executioner Online"

// Route — одна запись таблицы маршрутов.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Routes возвращает таблицу маршрутов сервиса.
func Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/", Handler: withError(handleRoot)},
	}
}

// Options — настройки роутера.
type Options struct {
	AccessLog bool
}

// NewRouter строит chi-роутер и регистрирует таблицу маршрутов один раз.
func NewRouter(opts Options) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if opts.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	for _, rt := range Routes() {
		r.Method(rt.Method, rt.Path, rt.Handler)
	}
	return r
}

// withError оборачивает обработчик: ошибка логируется, клиент получает 500.
func withError(h func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			log.Printf("⚠️ HTTP error: %v", err)
			http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		}
	}
}

// handleRoot отдаёт фиксированный статус.
// Успешный ответ (200): {"status": "SentinelStream Executioner Online"}.
func handleRoot(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(map[string]string{
		"status": StatusOnline,
	})
}
