package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spacebook/backend/internal/db"
	"github.com/spacebook/backend/internal/model"
	"github.com/spacebook/backend/internal/service"
)

// ResourceHandler serves the CRUD routes of one resource. C and E are the
// create and update payload types.
type ResourceHandler[T any, C model.Creator[T], E model.Editor[T]] struct {
	svc    *service.ResourceService[T]
	logger *slog.Logger

	// listFilter derives a filter for GET /<resource> from the query string.
	listFilter func(c *gin.Context) db.Filter
}

func NewResourceHandler[T any, C model.Creator[T], E model.Editor[T]](svc *service.ResourceService[T], logger *slog.Logger) *ResourceHandler[T, C, E] {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResourceHandler[T, C, E]{svc: svc, logger: logger}
}

// WithListFilter sets the filter applied to the plain list route.
func (h *ResourceHandler[T, C, E]) WithListFilter(f func(c *gin.Context) db.Filter) *ResourceHandler[T, C, E] {
	h.listFilter = f
	return h
}

// Register mounts POST /, GET /, GET /:id, PUT /:id and DELETE /:id on g.
func (h *ResourceHandler[T, C, E]) Register(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *ResourceHandler[T, C, E]) Create(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	row, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *ResourceHandler[T, C, E]) Get(c *gin.Context) {
	row, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *ResourceHandler[T, C, E]) List(c *gin.Context) {
	var filter db.Filter
	if h.listFilter != nil {
		filter = h.listFilter(c)
	}
	h.listWith(c, filter)
}

func (h *ResourceHandler[T, C, E]) Update(c *gin.Context) {
	var req E
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	row, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *ResourceHandler[T, C, E]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Record deleted"})
}

// ListByUser lists the rows owned by the :user_id path parameter. Pair it
// with RequireOwner.
func (h *ResourceHandler[T, C, E]) ListByUser(c *gin.Context) {
	h.listWith(c, db.ByUser(c.Param("user_id")))
}

// SearchByPeriod filters on start_date/end_date query parameters
// (RFC 3339 or YYYY-MM-DD).
func (h *ResourceHandler[T, C, E]) SearchByPeriod(c *gin.Context) {
	start, err := parseDateQuery(c, "start_date")
	if err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	end, err := parseDateQuery(c, "end_date")
	if err != nil {
		writeBadRequest(c, err.Error())
		return
	}
	h.listWith(c, db.ByPeriod(start, end))
}

// SearchByReadStatus requires user_id and read_status query parameters.
func (h *ResourceHandler[T, C, E]) SearchByReadStatus(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		writeBadRequest(c, "user_id is required")
		return
	}
	read, err := strconv.ParseBool(c.Query("read_status"))
	if err != nil {
		writeBadRequest(c, "read_status must be true or false")
		return
	}
	h.listWith(c, db.ByReadStatus(userID, read))
}

func (h *ResourceHandler[T, C, E]) listWith(c *gin.Context, filter db.Filter) {
	var q model.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBadRequest(c, "skip and limit must be integers")
		return
	}

	page, err := h.svc.List(c.Request.Context(), q, filter)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func spaceTypeFilter(c *gin.Context) db.Filter {
	return db.BySpaceType(c.Query("type"))
}

type queryError struct {
	param string
}

func (e queryError) Error() string {
	return e.param + " must be an RFC 3339 timestamp or YYYY-MM-DD date"
}

func parseDateQuery(c *gin.Context, param string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(param))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, queryError{param: param}
}
