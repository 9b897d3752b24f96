package handlers

import (
	"errors"
	"net/http"

	eventRepo "partnerhub/database/repository/event"
	"partnerhub/models"
	"partnerhub/services/events"
	"partnerhub/utils"

	"github.com/gin-gonic/gin"
)

// EventHandler serves /formateur-evenements.
type EventHandler struct {
	Service events.EventService
}

func NewEventHandler(svc events.EventService) *EventHandler {
	return &EventHandler{Service: svc}
}

// respondEventError adds the conflits list to schedule conflicts.
func respondEventError(c *gin.Context, err error) {
	var conflict *events.ConflictError
	if !errors.As(err, &conflict) {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success":  false,
		"message":  utils.PublicMessage(err),
		"kind":     utils.KindConflict,
		"conflits": conflict.Conflicts,
	})
}

func (h *EventHandler) CreateEventHandler(c *gin.Context) {
	var in models.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	ev, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		respondEventError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "event created", ev)
}

func (h *EventHandler) UpdateEventHandler(c *gin.Context) {
	var upd models.EventUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondBindError(c, err)
		return
	}
	ev, err := h.Service.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondEventError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "event updated", ev)
}

func (h *EventHandler) GetEventHandler(c *gin.Context) {
	ev, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", ev)
}

// ListEventsHandler accepts optional formateurId, from and to query parameters.
func (h *EventHandler) ListEventsHandler(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context(), eventRepo.Filter{
		TrainerID: c.Query("formateurId"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", list)
}

func (h *EventHandler) DeleteEventHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "event deleted", gin.H{"id": id})
}
