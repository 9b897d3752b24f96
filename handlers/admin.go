package handlers

import (
	"net/http"

	"partnerhub/models"
	"partnerhub/services/commercial"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves /commercial/admin.
type AdminHandler struct {
	Engine commercial.ProgressionEngine
}

func NewAdminHandler(engine commercial.ProgressionEngine) *AdminHandler {
	return &AdminHandler{Engine: engine}
}

// adminID names the caller for audit fields; set by the admin middleware.
func adminID(c *gin.Context) string {
	if id := c.GetString("adminID"); id != "" {
		return id
	}
	return "admin"
}

func (h *AdminHandler) CreateServiceHandler(c *gin.Context) {
	var in models.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	svc, err := h.Engine.CreateService(c.Request.Context(), in, adminID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "service created", svc)
}

// ListCatalogueHandler lists active services; ?all=true includes deactivated ones.
func (h *AdminHandler) ListCatalogueHandler(c *gin.Context) {
	services, err := h.Engine.ListCatalogue(c.Request.Context(), c.Query("all") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", services)
}

func (h *AdminHandler) DeactivateServiceHandler(c *gin.Context) {
	serviceID := c.Param("serviceId")
	if err := h.Engine.DeactivateService(c.Request.Context(), serviceID, adminID(c)); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "service deactivated", gin.H{"serviceId": serviceID})
}

func (h *AdminHandler) AssignServiceHandler(c *gin.Context) {
	var in models.AssignServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	added, err := h.Engine.AssignService(c.Request.Context(), in.ServiceID, in.PartnerID, adminID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	msg := "service assigned"
	if !added {
		msg = "service already assigned"
	}
	respondOK(c, http.StatusOK, msg, gin.H{"serviceId": in.ServiceID, "partnerId": in.PartnerID, "added": added})
}

func (h *AdminHandler) UnassignServiceHandler(c *gin.Context) {
	var in models.AssignServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.Engine.UnassignService(c.Request.Context(), in.ServiceID, in.PartnerID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "service unassigned", gin.H{"serviceId": in.ServiceID, "partnerId": in.PartnerID})
}

// MonthlyGiftsHandler runs the monthly gift batch synchronously.
func (h *AdminHandler) MonthlyGiftsHandler(c *gin.Context) {
	run, err := h.Engine.RunMonthlyGifts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "monthly gifts processed", run)
}

func (h *AdminHandler) ReconcileStatsHandler(c *gin.Context) {
	run, err := h.Engine.ReconcileServiceStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "service stats reconciled", run)
}

func (h *AdminHandler) DeactivatePartnerHandler(c *gin.Context) {
	partnerID := c.Param("partnerId")
	if err := h.Engine.DeactivatePartner(c.Request.Context(), partnerID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "partner deactivated", gin.H{"partnerId": partnerID})
}
