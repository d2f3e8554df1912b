package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"refdata/internal/domain"
)

type entityHandlers struct {
	svc RefEntityService
}

func (h entityHandlers) list(c *gin.Context) {
	collection := c.Param("collection")
	entities, err := h.svc.List(c.Request.Context(), collection)
	if err != nil {
		respondError(c, err)
		return
	}
	entityReads.WithLabelValues(collection).Inc()
	if entities == nil {
		entities = []domain.Entity{}
	}
	c.JSON(http.StatusOK, entities)
}

func (h entityHandlers) get(c *gin.Context) {
	collection := c.Param("collection")
	e, err := h.svc.Get(c.Request.Context(), collection, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	entityReads.WithLabelValues(collection).Inc()
	c.JSON(http.StatusOK, e)
}

func (h entityHandlers) create(c *gin.Context) {
	collection := c.Param("collection")
	var e domain.Entity
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), collection, e)
	if err != nil {
		respondError(c, err)
		return
	}
	entityWrites.WithLabelValues(collection, "create").Inc()
	c.JSON(http.StatusCreated, saved)
}

func (h entityHandlers) update(c *gin.Context) {
	collection := c.Param("collection")
	var e domain.Entity
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	e.ID = c.Param("id")

	saved, err := h.svc.Save(c.Request.Context(), collection, e)
	if err != nil {
		respondError(c, err)
		return
	}
	entityWrites.WithLabelValues(collection, "update").Inc()
	c.JSON(http.StatusOK, saved)
}

func (h entityHandlers) remove(c *gin.Context) {
	collection := c.Param("collection")
	if err := h.svc.Delete(c.Request.Context(), collection, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	entityWrites.WithLabelValues(collection, "delete").Inc()
	c.Status(http.StatusNoContent)
}

// reorder accepts the full ordered list. Elements only need an id; the
// positions are implied by the order of the list itself.
func (h entityHandlers) reorder(c *gin.Context) {
	collection := c.Param("collection")
	var items []struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "every item needs an id"})
			return
		}
		ids = append(ids, item.ID)
	}

	if err := h.svc.Reorder(c.Request.Context(), collection, ids); err != nil {
		respondError(c, err)
		return
	}
	entityWrites.WithLabelValues(collection, "reorder").Inc()
	c.Status(http.StatusNoContent)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownCollection):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrBlankTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
