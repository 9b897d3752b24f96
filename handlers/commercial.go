package handlers

import (
	"net/http"

	"partnerhub/models"
	"partnerhub/services/commercial"
	"partnerhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommercialHandler serves the partner-facing /commercial/:partnerId endpoints.
type CommercialHandler struct {
	Engine commercial.ProgressionEngine
	Tokens *utils.TokenIssuer
}

func NewCommercialHandler(engine commercial.ProgressionEngine, tokens *utils.TokenIssuer) *CommercialHandler {
	return &CommercialHandler{Engine: engine, Tokens: tokens}
}

// LoginHandler returns the partner summary and a session token, provisioning the
// partner from the directory on first login.
func (h *CommercialHandler) LoginHandler(c *gin.Context) {
	partnerID := c.Param("partnerId")
	res, err := h.Engine.Login(c.Request.Context(), partnerID)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.Tokens.GenerateToken(res.Partner.PartnerID)
	if err != nil {
		respondError(c, utils.Internal(err, "failed to issue session token"))
		return
	}
	if res.Provisioned {
		getLogger(c).Info("partner first login", zap.String("partnerId", partnerID))
	}
	respondOK(c, http.StatusOK, "", gin.H{
		"partner":     res.Partner.Summary(),
		"token":       token,
		"provisioned": res.Provisioned,
	})
}

func (h *CommercialHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Engine.ListServices(c.Request.Context(), c.Param("partnerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", services)
}

// RecordSaleHandler handles POST /commercial/:partnerId/vente.
func (h *CommercialHandler) RecordSaleHandler(c *gin.Context) {
	var in models.SaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.Engine.RecordSale(c.Request.Context(), c.Param("partnerId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "sale recorded", res)
}

func (h *CommercialHandler) RecordClientHandler(c *gin.Context) {
	var in models.ClientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	client, err := h.Engine.RecordClient(c.Request.Context(), c.Param("partnerId"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "client added", client)
}

func (h *CommercialHandler) RecordTransferHandler(c *gin.Context) {
	var in models.TransferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	p, err := h.Engine.RecordTransfer(c.Request.Context(), c.Param("partnerId"), in.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "transfer recorded", p.Summary())
}

func (h *CommercialHandler) StatisticsHandler(c *gin.Context) {
	stats, err := h.Engine.GetStatistics(c.Request.Context(), c.Param("partnerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", stats)
}
