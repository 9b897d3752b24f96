package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"partnerhub/database/repository/memory"
	"partnerhub/handlers"
	"partnerhub/models"
	"partnerhub/services/commercial"
	"partnerhub/services/events"
	"partnerhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const adminToken = "test-admin"

type testServer struct {
	router   *gin.Engine
	partners *memory.PartnerStore
	services *memory.ServiceStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, handlers.RegisterValidators())

	partners := memory.NewPartnerStore()
	services := memory.NewServiceStore()
	directory := memory.NewDirectoryStore(models.DirectoryEntry{
		PartnerID: "COM-000001", FirstName: "Awa", LastName: "Diop", Email: "awa@example.com",
	})
	engine, err := commercial.NewDefaultProgressionEngine(partners, services, directory, nil, zap.NewNop())
	require.NoError(t, err)
	eventSvc := events.NewDefaultEventService(memory.NewEventStore(), zap.NewNop())

	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	hb := handlers.NewHandlerBundle(
		handlers.NewCommercialHandler(engine, tokens),
		handlers.NewAdminHandler(engine),
		handlers.NewEventHandler(eventSvc),
		adminToken,
	)

	r := gin.New()
	RegisterRoutes(r, hb)
	return &testServer{router: r, partners: partners, services: services}
}

type envelope struct {
	Success  bool                  `json:"success"`
	Message  string                `json:"message"`
	Kind     string                `json:"kind"`
	Data     json.RawMessage       `json:"data"`
	Conflits []models.ConflictView `json:"conflits"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) login(t *testing.T, partnerID string) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/commercial/"+partnerID+"/login", "", nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token
}

func TestCommercialFlow(t *testing.T) {
	s := newTestServer(t)

	// GIVEN: a directory partner logs in for the first time
	token := s.login(t, "COM-000001")
	p, err := s.partners.GetByPartnerID(context.Background(), "COM-000001")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Tier)

	// AND: an admin creates and assigns a service
	code, env := s.do(t, http.MethodPost, "/commercial/admin/services", adminToken, models.ServiceInput{Title: "Audit", Commission: 50})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var svc models.Service
	require.NoError(t, json.Unmarshal(env.Data, &svc))

	assign := models.AssignServiceInput{ServiceID: svc.ID, PartnerID: "COM-000001"}
	code, _ = s.do(t, http.MethodPost, "/commercial/admin/assign-service", adminToken, assign)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, "/commercial/admin/assign-service", adminToken, assign)
	require.Equal(t, http.StatusOK, code)
	stored, err := s.services.GetByID(context.Background(), svc.ID)
	require.NoError(t, err)
	assert.Len(t, stored.AuthorizedPartners, 1)

	code, env = s.do(t, http.MethodGet, "/commercial/COM-000001/services", token, nil)
	require.Equal(t, http.StatusOK, code)
	var list []models.Service
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	// WHEN: the partner records a sale
	code, env = s.do(t, http.MethodPost, "/commercial/COM-000001/vente", token, map[string]any{
		"serviceId": svc.ID, "client": "Acme", "clientEmail": "buyer@acme.test",
		"montant": 600, "commission": 60, "methodePaiement": "virement",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	// THEN: the response carries the points summary
	var sale struct {
		PointsEarned int `json:"pointsGagnes"`
		NewTier      int `json:"nouveauNiveau"`
		TotalPoints  int `json:"totalPoints"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sale))
	assert.Equal(t, 5, sale.PointsEarned)
	assert.Equal(t, 1, sale.NewTier)
	assert.Equal(t, 5, sale.TotalPoints)

	// Tier 1 cannot add clients or transfer.
	code, env = s.do(t, http.MethodPost, "/commercial/COM-000001/client", token, map[string]any{"nom": "Acme"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "forbidden", env.Kind)
	assert.False(t, env.Success)

	code, env = s.do(t, http.MethodPost, "/commercial/COM-000001/transfert", token, map[string]any{"montant": 600})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_state", env.Kind)

	code, env = s.do(t, http.MethodGet, "/commercial/COM-000001/stats", token, nil)
	require.Equal(t, http.StatusOK, code)
	var stats models.PartnerStatistics
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 600.0, stats.Revenue)
	assert.Equal(t, 1, stats.ConfirmedSalesCount)
}

func TestCommercialRoutes_Errors(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "COM-000001")

	code, env := s.do(t, http.MethodPost, "/commercial/COM-999999/login", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Kind)

	code, env = s.do(t, http.MethodPost, "/commercial/bogus/login", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_argument", env.Kind)

	code, _ = s.do(t, http.MethodGet, "/commercial/COM-000001/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.do(t, http.MethodPost, "/commercial/COM-000001/vente", token, map[string]any{
		"serviceId": "missing", "client": "Acme", "montant": 10, "commission": 1,
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Kind)

	code, env = s.do(t, http.MethodPost, "/commercial/COM-000001/vente", token, map[string]any{
		"serviceId": "x", "client": "Acme", "montant": -10,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_argument", env.Kind)

	code, _ = s.do(t, http.MethodPost, "/commercial/admin/assign-service", adminToken, map[string]any{
		"serviceId": "x", "partnerId": "COM-12",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/commercial/admin/cadeaux-mensuels", "wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdminBatchRoutes(t *testing.T) {
	s := newTestServer(t)
	s.partners.Put(&models.Partner{PartnerID: "COM-000007", Tier: models.TierThree, Active: true})

	code, env := s.do(t, http.MethodPost, "/commercial/admin/cadeaux-mensuels", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var run models.MonthlyGiftRun
	require.NoError(t, json.Unmarshal(env.Data, &run))
	assert.Equal(t, 1, run.Processed)
	assert.Equal(t, 1, run.Gifted)

	code, _ = s.do(t, http.MethodPost, "/commercial/admin/reconcile-stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodDelete, "/commercial/admin/partners/COM-000007", adminToken, nil)
	assert.Equal(t, http.StatusOK, code)
	p, err := s.partners.GetByPartnerID(context.Background(), "COM-000007")
	require.NoError(t, err)
	assert.False(t, p.Active)
}

func TestAdminCatalogueRoutes(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(t, http.MethodPost, "/commercial/admin/services", adminToken, models.ServiceInput{Title: "Audit"})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var svc models.Service
	require.NoError(t, json.Unmarshal(env.Data, &svc))

	code, _ = s.do(t, http.MethodDelete, "/commercial/admin/services/"+svc.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = s.do(t, http.MethodDelete, "/commercial/admin/services/missing", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "not_found", env.Kind)

	code, env = s.do(t, http.MethodGet, "/commercial/admin/services", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var active []models.Service
	require.NoError(t, json.Unmarshal(env.Data, &active))
	assert.Empty(t, active)

	code, env = s.do(t, http.MethodGet, "/commercial/admin/services?all=true", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var all []models.Service
	require.NoError(t, json.Unmarshal(env.Data, &all))
	require.Len(t, all, 1)
	assert.False(t, all[0].Active)

	code, _ = s.do(t, http.MethodGet, "/commercial/admin/services", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestEventRoutes(t *testing.T) {
	s := newTestServer(t)
	event := map[string]any{
		"formateurId": "T-1", "subject": "Lean", "date": "2025-06-01",
		"startTime": "09:00", "endTime": "11:00",
	}

	code, env := s.do(t, http.MethodPost, "/formateur-evenements", "", event)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var created models.Event
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, 120, created.DurationMinutes)

	// Overlap is rejected with the conflicting events.
	event["startTime"], event["endTime"], event["subject"] = "10:00", "12:00", "Kaizen"
	code, env = s.do(t, http.MethodPost, "/formateur-evenements", "", event)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "conflict", env.Kind)
	require.Len(t, env.Conflits, 1)
	assert.Equal(t, "Lean", env.Conflits[0].Subject)
	assert.Equal(t, "09:00", env.Conflits[0].StartTime)

	// Adjacent is fine.
	event["startTime"] = "11:00"
	code, _ = s.do(t, http.MethodPost, "/formateur-evenements", "", event)
	require.Equal(t, http.StatusCreated, code)

	// Malformed time fails binding.
	event["startTime"] = "11h"
	code, env = s.do(t, http.MethodPost, "/formateur-evenements", "", event)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_argument", env.Kind)

	code, env = s.do(t, http.MethodPut, "/formateur-evenements/"+created.ID, "", map[string]any{"endTime": "10:30"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var updated models.Event
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 90, updated.DurationMinutes)

	code, env = s.do(t, http.MethodGet, "/formateur-evenements?formateurId=T-1", "", nil)
	require.Equal(t, http.StatusOK, code)
	var list []models.Event
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)

	code, _ = s.do(t, http.MethodDelete, "/formateur-evenements/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodGet, "/formateur-evenements/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}
