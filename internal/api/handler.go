package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tweet-discussion-api/internal/apperr"
	"github.com/tweet-discussion-api/internal/validation"
)

// crudService is the shape shared by every entity service
type crudService[D any] interface {
	Create(ctx context.Context, dto *D) (*D, error)
	GetOne(ctx context.Context, id int64) (*D, error)
	GetAll(ctx context.Context) ([]*D, error)
	Update(ctx context.Context, dto *D) (*D, error)
	Delete(ctx context.Context, id int64) error
}

// dtoPtr constrains P to *D carrying an id
type dtoPtr[D any] interface {
	*D
	validation.Identifiable
}

// resourceHandler binds one REST collection to its service. Bodies are
// validated here so services only ever see well-formed input.
type resourceHandler[D any, P dtoPtr[D]] struct {
	svc crudService[D]
	log zerolog.Logger
}

func newResourceHandler[D any, P dtoPtr[D]](svc crudService[D], name string, log zerolog.Logger) *resourceHandler[D, P] {
	return &resourceHandler[D, P]{
		svc: svc,
		log: log.With().Str("handler", name).Logger(),
	}
}

// register mounts POST, GET, GET /:id, PUT and DELETE /:id under group
func (h *resourceHandler[D, P]) register(group *gin.RouterGroup) {
	group.POST("", h.Create)
	group.GET("", h.GetAll)
	group.GET("/:id", h.GetOne)
	group.PUT("", h.Update)
	group.DELETE("/:id", h.Delete)
}

func (h *resourceHandler[D, P]) Create(c *gin.Context) {
	var body D
	if !bindJSON(c, &body) {
		return
	}
	if fields := validation.Validate(P(&body)); len(fields) > 0 {
		respondError(c, h.log, apperr.ValidationFailed(fields))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &body)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *resourceHandler[D, P]) GetOne(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	found, err := h.svc.GetOne(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *resourceHandler[D, P]) GetAll(c *gin.Context) {
	all, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

// Update takes the target id from the body
func (h *resourceHandler[D, P]) Update(c *gin.Context) {
	var body D
	if !bindJSON(c, &body) {
		return
	}
	if fields := validation.ValidateUpdate(P(&body)); len(fields) > 0 {
		respondError(c, h.log, apperr.ValidationFailed(fields))
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), &body)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *resourceHandler[D, P]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindJSON(c *gin.Context, body interface{}) bool {
	if err := c.ShouldBindJSON(body); err != nil {
		writeError(c, http.StatusBadRequest, malformedBody, nil)
		return false
	}
	return true
}

// pathID parses :id, answering 400 unless it is a positive integer
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "Validation Error", map[string]string{"id": "ID must be a positive integer"})
		return 0, false
	}
	return id, true
}
