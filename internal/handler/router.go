package handler

import (
	"log/slog"
	"net/http"

	"tableapi/backend/internal/logging"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route as [operation, Respond].
func NewRouter(h *Handler, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(logger))

	r.GET("/ping", Ping)
	r.GET("/health", h.Health)

	tables := r.Group("/tables")
	tables.GET("", h.ListTables, Respond(http.StatusOK))
	tables.POST("", h.CreateTable, Respond(http.StatusCreated))
	tables.GET("/:name", h.GetTable, Respond(http.StatusOK))
	tables.POST("/:name", h.CreateRow, Respond(http.StatusCreated))
	tables.DELETE("/:name", h.DeleteTable, Respond(http.StatusOK))
	tables.GET("/:name/:id", h.GetRow, Respond(http.StatusOK))
	tables.PUT("/:name/:id", h.UpdateRow, Respond(http.StatusOK))
	tables.DELETE("/:name/:id", h.DeleteRow, Respond(http.StatusOK))

	return r
}
