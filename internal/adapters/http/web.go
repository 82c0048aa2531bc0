// Package web exposes the scheduler engine over a JSON API. Authentication
// and request routing policy live with the deployment's outer layer; this
// adapter only translates HTTP to engine calls and errors to status codes.
package web

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"courtside/internal/application/scheduler"
)

// Server holds the handler dependencies.
type Server struct {
	engine   *scheduler.Engine
	validate *validator.Validate
}

// NewMux wires the scheduler API routes.
func NewMux(engine *scheduler.Engine) http.Handler {
	s := &Server{
		engine:   engine,
		validate: validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/players", s.handleListPlayers)
	mux.HandleFunc("POST /api/players", s.handleAddPlayer)
	mux.HandleFunc("PATCH /api/players/{id}", s.handleUpdatePlayer)
	mux.HandleFunc("DELETE /api/players/{id}", s.handleDeletePlayer)
	mux.HandleFunc("POST /api/players/{id}/enroll", s.handleEnroll)
	mux.HandleFunc("POST /api/players/{id}/unenroll", s.handleUnenroll)

	mux.HandleFunc("GET /api/classes", s.handleListClasses)
	mux.HandleFunc("POST /api/classes", s.handleCreateClass)
	mux.HandleFunc("POST /api/classes/series", s.handleCreateSeries)
	mux.HandleFunc("POST /api/classes/copy", s.handleCopyMonth)
	mux.HandleFunc("POST /api/classes/bulk-delete", s.handleBulkDelete)
	mux.HandleFunc("PATCH /api/classes/{id}", s.handleUpdateClass)
	mux.HandleFunc("DELETE /api/classes/{id}", s.handleDeleteClass)
	mux.HandleFunc("POST /api/classes/{id}/propagate", s.handlePropagate)
	mux.HandleFunc("POST /api/classes/{id}/roster/{playerID}/remove", s.handleRemoveFromClass)
	mux.HandleFunc("POST /api/classes/{id}/attendance/{playerID}", s.handleMarkAttendance)
	mux.HandleFunc("POST /api/mark-absent", s.handleMarkAbsent)

	mux.HandleFunc("GET /api/makeup-options/{playerID}", s.handleMakeupOptions)
	mux.HandleFunc("POST /api/book", s.handleBookMakeup)

	mux.HandleFunc("GET /api/month-stats", s.handleMonthStats)
	mux.HandleFunc("GET /api/targets/{month}", s.handleGetTarget)
	mux.HandleFunc("PUT /api/targets/{month}", s.handleSetTarget)

	return mux
}
