package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"tableapi/backend/internal/model"
	"tableapi/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Keys under which operation handlers stage their results for Respond.
const (
	KeyTables         = "tables"
	KeyRows           = "rows"
	KeyColumns        = "columns"
	KeyRow            = "row"
	KeyCollectionName = "collectionName"
)

var stagedKeys = []string{KeyTables, KeyRows, KeyColumns, KeyRow, KeyCollectionName}

// Tables is the table service as used by the HTTP layer.
type Tables interface {
	Ping(ctx context.Context) error
	ListTables(ctx context.Context) (*service.TableList, error)
	GetTable(ctx context.Context, table string) (*service.TableDetail, error)
	CreateTable(ctx context.Context, req *model.CreateTableRequest) (*service.CreatedTable, error)
	DeleteTable(ctx context.Context, table string) error
	GetRow(ctx context.Context, table, id string) (*service.RowResult, error)
	CreateRow(ctx context.Context, table string, payload model.RowPayload) (*service.RowResult, error)
	UpdateRow(ctx context.Context, table, id string, payload model.RowPayload) (*service.RowResult, error)
	DeleteRow(ctx context.Context, table, id string) error
}

type Options struct {
	// SurfaceRowErrors turns off the swallowing of database errors on
	// GetRow, CreateRow and DeleteRow.
	SurfaceRowErrors bool
}

type Handler struct {
	tables Tables
	logger *slog.Logger
	opts   Options
}

func New(tables Tables, logger *slog.Logger, opts Options) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{tables: tables, logger: logger, opts: opts}
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type operation struct {
	name string
	// swallow marks operations whose database errors are logged and
	// otherwise ignored unless Options.SurfaceRowErrors is set.
	swallow bool
}

var (
	opListTables  = operation{name: "list_tables"}
	opGetTable    = operation{name: "get_table"}
	opCreateTable = operation{name: "create_table"}
	opDeleteTable = operation{name: "delete_table"}
	opGetRow      = operation{name: "get_row", swallow: true}
	opCreateRow   = operation{name: "create_row", swallow: true}
	opUpdateRow   = operation{name: "update_row"}
	opDeleteRow   = operation{name: "delete_row", swallow: true}
)

// fail is the only place an operation error becomes a response.
// A swallowed error leaves the chain running, so Respond still answers.
func (h *Handler) fail(c *gin.Context, op operation, err error) {
	kind := service.KindOf(err)

	if kind == service.KindInternal && op.swallow && !h.opts.SurfaceRowErrors {
		h.logger.ErrorContext(c.Request.Context(), "row operation failed",
			"op", op.name, "table", c.Param("name"), "id", c.Param("id"), "error", err)
		return
	}

	_ = c.Error(err)
	status := http.StatusInternalServerError
	if kind == service.KindBadRequest {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Message: err.Error()})
}

// Respond writes the success envelope from whatever the operation staged.
func Respond(status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"success": true}
		for _, k := range stagedKeys {
			if v, ok := c.Get(k); ok {
				body[k] = v
			}
		}
		c.JSON(status, body)
	}
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.tables.Ping(c.Request.Context()); err != nil {
		h.logger.WarnContext(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Success: false, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ListTables(c *gin.Context) {
	res, err := h.tables.ListTables(c.Request.Context())
	if err != nil {
		h.fail(c, opListTables, err)
		return
	}

	tables := res.Tables
	if tables == nil {
		tables = []string{}
	}
	c.Set(KeyTables, tables)
}

func (h *Handler) GetTable(c *gin.Context) {
	res, err := h.tables.GetTable(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, opGetTable, err)
		return
	}

	rows := res.Rows
	if rows == nil {
		rows = []map[string]any{}
	}
	columns := res.Columns
	if columns == nil {
		columns = []model.Column{}
	}
	c.Set(KeyRows, rows)
	c.Set(KeyColumns, columns)
}

func (h *Handler) CreateTable(c *gin.Context) {
	body, ok := h.readBody(c, opCreateTable)
	if !ok {
		return
	}

	var req *model.CreateTableRequest
	if hasData(body) {
		req = &model.CreateTableRequest{}
		if err := binding.JSON.BindBody(body, req); err != nil {
			h.fail(c, opCreateTable, service.BadRequest(service.MsgInvalidData))
			return
		}
	}

	res, err := h.tables.CreateTable(c.Request.Context(), req)
	if err != nil {
		h.fail(c, opCreateTable, err)
		return
	}
	c.Set(KeyCollectionName, res.CollectionName)
}

func (h *Handler) DeleteTable(c *gin.Context) {
	if err := h.tables.DeleteTable(c.Request.Context(), c.Param("name")); err != nil {
		h.fail(c, opDeleteTable, err)
	}
}

func (h *Handler) GetRow(c *gin.Context) {
	res, err := h.tables.GetRow(c.Request.Context(), c.Param("name"), c.Param("id"))
	if err != nil {
		h.fail(c, opGetRow, err)
		return
	}
	c.Set(KeyRow, res.Row)
}

func (h *Handler) CreateRow(c *gin.Context) {
	payload, ok := h.bindRow(c, opCreateRow)
	if !ok {
		return
	}

	res, err := h.tables.CreateRow(c.Request.Context(), c.Param("name"), payload)
	if err != nil {
		h.fail(c, opCreateRow, err)
		return
	}
	c.Set(KeyRow, res.Row)
}

func (h *Handler) UpdateRow(c *gin.Context) {
	payload, ok := h.bindRow(c, opUpdateRow)
	if !ok {
		return
	}

	res, err := h.tables.UpdateRow(c.Request.Context(), c.Param("name"), c.Param("id"), payload)
	if err != nil {
		h.fail(c, opUpdateRow, err)
		return
	}
	c.Set(KeyRow, res.Row)
}

func (h *Handler) DeleteRow(c *gin.Context) {
	if err := h.tables.DeleteRow(c.Request.Context(), c.Param("name"), c.Param("id")); err != nil {
		h.fail(c, opDeleteRow, err)
	}
}

func (h *Handler) readBody(c *gin.Context, op operation) ([]byte, bool) {
	if c.Request.Body == nil {
		return nil, true
	}
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, op, service.BadRequest(service.MsgInvalidData))
		return nil, false
	}
	return body, true
}

// bindRow decodes the request body as a row payload. An absent body
// yields a nil payload.
func (h *Handler) bindRow(c *gin.Context, op operation) (model.RowPayload, bool) {
	body, ok := h.readBody(c, op)
	if !ok {
		return nil, false
	}
	if !hasData(body) {
		return nil, true
	}

	var payload model.RowPayload
	if err := binding.JSON.BindBody(body, &payload); err != nil {
		h.fail(c, op, service.BadRequest(service.MsgInvalidData))
		return nil, false
	}
	return payload, true
}

func hasData(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
