package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedlot/internal/domain/models"
	"github.com/mamadbah2/feedlot/internal/repository/memory"
	"github.com/mamadbah2/feedlot/internal/server/handlers"
	"github.com/mamadbah2/feedlot/internal/service/pens"
	"github.com/mamadbah2/feedlot/internal/service/units"
)

func newTestRouter(t *testing.T, seed bool) (*gin.Engine, []models.Pen, []models.FeedingUnit) {
	t.Helper()
	penStore := memory.NewPenStore()
	unitStore := memory.NewUnitStore(penStore)

	var seededPens []models.Pen
	var seededUnits []models.FeedingUnit
	if seed {
		seededPens = penStore.Seed()
		seededUnits = unitStore.Seed(seededPens)
	}

	penSvc := pens.NewService(penStore, 1.5, nil)
	unitSvc := units.NewService(unitStore, nil)

	engine := New(
		handlers.NewPenHandler(penSvc, nil),
		handlers.NewMetricsHandler(penSvc, nil),
		handlers.NewUnitHandler(unitSvc, nil),
		nil,
	)
	return engine, seededPens, seededUnits
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHealthz(t *testing.T) {
	engine, _, _ := newTestRouter(t, false)
	rec := doJSON(t, engine, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPenLifecycleOverHTTP(t *testing.T) {
	engine, _, _ := newTestRouter(t, false)

	rec := doJSON(t, engine, http.MethodPost, "/pens", gin.H{
		"name":                   "Pen E-04",
		"startDate":              "2025-02-01",
		"animalCount":            60,
		"entryWeightPerAnimal":   34,
		"currentWeightPerAnimal": 34,
		"breed":                  "Wagyu Cross",
		"status":                 "active",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Pen
	decode(t, rec, &created)
	require.NotEmpty(t, created.ID)
	require.Len(t, created.WeightRecords, 1)

	rec = doJSON(t, engine, http.MethodPost, "/pens/"+created.ID+"/weights", gin.H{
		"date":            "2025-02-11",
		"weightPerAnimal": 39,
		"source":          "scale",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodPost, "/pens/"+created.ID+"/feeds", gin.H{
		"date":     "2025-02-11",
		"feedType": "Grower Mix",
		"amount":   600,
		"cost":     900,
		"source":   "manual",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodGet, "/pens/"+created.ID+"/fco", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fco models.FCOData
	decode(t, rec, &fco)
	assert.InDelta(t, 300, fco.TotalWeightGain, 1e-9)
	assert.InDelta(t, 2.0, fco.CurrentFCO, 1e-9)

	rec = doJSON(t, engine, http.MethodDelete, "/pens/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, engine, http.MethodGet, "/pens/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPenValidationMapsToBadRequest(t *testing.T) {
	engine, _, _ := newTestRouter(t, false)

	// Binding failure: required fields missing.
	rec := doJSON(t, engine, http.MethodPost, "/pens", gin.H{"name": "Pen X"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Store validation failure: negative animal count.
	rec = doJSON(t, engine, http.MethodPost, "/pens", gin.H{
		"name":        "Pen X",
		"startDate":   "2025-02-01",
		"animalCount": -5,
		"status":      "active",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed date.
	rec = doJSON(t, engine, http.MethodPost, "/pens", gin.H{
		"name":      "Pen X",
		"startDate": "02/01/2025",
		"status":    "active",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSupplementEndpointDualWrites(t *testing.T) {
	engine, pens, _ := newTestRouter(t, true)
	penD := pens[3]

	rec := doJSON(t, engine, http.MethodPost, "/pens/"+penD.ID+"/supplements", gin.H{
		"date":           "2025-02-01",
		"supplementName": "Electrolyte Mix",
		"costPerAnimal":  1.5,
		"category":       "other",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var updated models.Pen
	decode(t, rec, &updated)
	assert.Len(t, updated.SupplementCosts, 2)
	assert.Len(t, updated.CostRecords, 3)
}

func TestDashboardEndpoint(t *testing.T) {
	engine, _, _ := newTestRouter(t, true)

	rec := doJSON(t, engine, http.MethodGet, "/metrics/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.DashboardStats
	decode(t, rec, &stats)
	assert.Equal(t, 4, stats.TotalPens)
	assert.Equal(t, 3, stats.ActivePens)
	assert.Equal(t, 385, stats.TotalAnimals)
	assert.Equal(t, 285, stats.ActiveAnimals)
}

func TestFleetFCOEndpoint(t *testing.T) {
	engine, pens, _ := newTestRouter(t, true)

	rec := doJSON(t, engine, http.MethodGet, "/metrics/fco", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fleet []models.FCOData
	decode(t, rec, &fleet)
	assert.Len(t, fleet, len(pens))
}

func TestUnitLinkConflictMapsToConflict(t *testing.T) {
	engine, pens, units := newTestRouter(t, true)

	rec := doJSON(t, engine, http.MethodPost, "/units/"+units[1].ID+"/link", gin.H{
		"penId": pens[0].ID,
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodPost, "/units/"+units[1].ID+"/unlink", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, engine, http.MethodPost, "/units/"+units[1].ID+"/link", gin.H{
		"penId": pens[2].ID,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookFeedIngestion(t *testing.T) {
	engine, pens, _ := newTestRouter(t, true)

	rec := doJSON(t, engine, http.MethodPost, "/webhook/feed", gin.H{
		"deviceId":   "feeder-001",
		"timestamp":  "2025-03-04T08:00:00Z",
		"feedAmount": 150,
		"feedType":   "Mixed Feed",
		"cost":       225,
	})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	var unit models.FeedingUnit
	decode(t, rec, &unit)
	require.Len(t, unit.RecentData, 1)
	assert.Equal(t, pens[0].ID, unit.RecentData[0].PenID)

	rec = doJSON(t, engine, http.MethodGet, "/pens/"+pens[0].ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pen models.Pen
	decode(t, rec, &pen)
	assert.Len(t, pen.FeedRecords, 2)

	rec = doJSON(t, engine, http.MethodPost, "/webhook/feed", gin.H{
		"deviceId":   "feeder-404",
		"timestamp":  "2025-03-04T08:00:00Z",
		"feedAmount": 10,
		"feedType":   "Mixed Feed",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConnectionToggleOverHTTP(t *testing.T) {
	engine, _, units := newTestRouter(t, true)

	rec := doJSON(t, engine, http.MethodPost, "/units/"+units[0].ID+"/connection", gin.H{
		"isConnected": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var unit models.FeedingUnit
	decode(t, rec, &unit)
	assert.False(t, unit.Connected)
	assert.Nil(t, unit.LastUpdate)

	// Missing flag is a binding error.
	rec = doJSON(t, engine, http.MethodPost, "/units/"+units[0].ID+"/connection", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
