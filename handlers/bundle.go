package handlers

import (
	"partnerhub/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers registered by routes.
type HandlerBundle struct {
	// Auth material for the route middleware.
	Tokens     *utils.TokenIssuer
	AdminToken string
	// Health returns the latest backend health snapshot; nil means always healthy.
	Health func() utils.HealthStatus

	// Partner endpoints
	LoginHandler          gin.HandlerFunc
	ListServicesHandler   gin.HandlerFunc
	RecordSaleHandler     gin.HandlerFunc
	RecordClientHandler   gin.HandlerFunc
	RecordTransferHandler gin.HandlerFunc
	StatisticsHandler     gin.HandlerFunc

	// Admin endpoints
	CreateServiceHandler     gin.HandlerFunc
	ListCatalogueHandler     gin.HandlerFunc
	DeactivateServiceHandler gin.HandlerFunc
	AssignServiceHandler     gin.HandlerFunc
	UnassignServiceHandler   gin.HandlerFunc
	MonthlyGiftsHandler      gin.HandlerFunc
	ReconcileStatsHandler    gin.HandlerFunc
	DeactivatePartnerHandler gin.HandlerFunc

	// Trainer event endpoints
	CreateEventHandler gin.HandlerFunc
	UpdateEventHandler gin.HandlerFunc
	GetEventHandler    gin.HandlerFunc
	ListEventsHandler  gin.HandlerFunc
	DeleteEventHandler gin.HandlerFunc
}

// NewHandlerBundle wires the handler methods into a bundle.
func NewHandlerBundle(ch *CommercialHandler, ah *AdminHandler, eh *EventHandler, adminToken string) *HandlerBundle {
	return &HandlerBundle{
		Tokens:     ch.Tokens,
		AdminToken: adminToken,

		LoginHandler:          ch.LoginHandler,
		ListServicesHandler:   ch.ListServicesHandler,
		RecordSaleHandler:     ch.RecordSaleHandler,
		RecordClientHandler:   ch.RecordClientHandler,
		RecordTransferHandler: ch.RecordTransferHandler,
		StatisticsHandler:     ch.StatisticsHandler,

		CreateServiceHandler:     ah.CreateServiceHandler,
		ListCatalogueHandler:     ah.ListCatalogueHandler,
		DeactivateServiceHandler: ah.DeactivateServiceHandler,
		AssignServiceHandler:     ah.AssignServiceHandler,
		UnassignServiceHandler:   ah.UnassignServiceHandler,
		MonthlyGiftsHandler:      ah.MonthlyGiftsHandler,
		ReconcileStatsHandler:    ah.ReconcileStatsHandler,
		DeactivatePartnerHandler: ah.DeactivatePartnerHandler,

		CreateEventHandler: eh.CreateEventHandler,
		UpdateEventHandler: eh.UpdateEventHandler,
		GetEventHandler:    eh.GetEventHandler,
		ListEventsHandler:  eh.ListEventsHandler,
		DeleteEventHandler: eh.DeleteEventHandler,
	}
}
