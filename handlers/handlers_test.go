package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fieldline/models"
	"fieldline/services/dispatch"
	"fieldline/services/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBusinessRepo struct{ business models.Business }

func (r *stubBusinessRepo) GetByID(_ context.Context, _ string) (*models.Business, error) {
	b := r.business
	return &b, nil
}

type stubTechnicianRepo struct{ technicians []models.Technician }

func (r *stubTechnicianRepo) ListByBusiness(_ context.Context, _ string) ([]models.Technician, error) {
	return r.technicians, nil
}

type stubAppointmentRepo struct{ appointments []models.Appointment }

func (r *stubAppointmentRepo) FetchByBusinessAndRange(_ context.Context, _ string, _, _ time.Time) ([]models.Appointment, error) {
	return r.appointments, nil
}

func (r *stubAppointmentRepo) Insert(_ context.Context, _ models.Appointment) error { return nil }

func everyDayHours() map[string][]string {
	hours := make(map[string][]string)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		hours[day] = []string{"08:00-18:00"}
	}
	return hours
}

func newTestBundle(t *testing.T) *HandlerBundle {
	t.Helper()
	matcher, err := dispatch.NewMatcher(nil)
	require.NoError(t, err)
	return &HandlerBundle{
		Engine:  scheduling.NewEngine(scheduling.DefaultConfig(), nil),
		Matcher: matcher,
		Businesses: &stubBusinessRepo{business: models.Business{
			ID:            "b1",
			BusinessHours: everyDayHours(),
			DispatchRules: models.DispatchRules{Mode: "skill_based"},
		}},
		Technicians: &stubTechnicianRepo{technicians: []models.Technician{
			{ID: "t1", Name: "Alice", IsAvailable: true, Skills: []string{"plumbing"}},
		}},
		Appointments: &stubAppointmentRepo{},
	}
}

func newTestRouter(hb *HandlerBundle) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/scheduling/availability", hb.GetAvailabilityHandler)
	r.POST("/api/scheduling/emergency", hb.RouteEmergencyHandler)
	r.POST("/api/dispatch/match", hb.MatchTechnicianHandler)
	r.POST("/api/dispatch/notify", hb.NotifyAssignmentHandler)
	return r
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetAvailabilityHandler(t *testing.T) {
	router := newTestRouter(newTestBundle(t))

	start := time.Now().AddDate(0, 0, 7)
	w := postJSON(t, router, "/api/scheduling/availability", gin.H{
		"businessId": "b1",
		"job":        gin.H{"serviceType": "plumbing", "estimatedDuration": 60},
		"startDate":  start.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Slots        []models.TimeSlot `json:"slots"`
		VoiceSummary string            `json:"voiceSummary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Slots)
	assert.NotEmpty(t, resp.VoiceSummary)
}

func TestGetAvailabilityHandlerRejectsBadInput(t *testing.T) {
	router := newTestRouter(newTestBundle(t))
	w := postJSON(t, router, "/api/scheduling/availability", gin.H{"job": gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouteEmergencyHandler(t *testing.T) {
	router := newTestRouter(newTestBundle(t))
	w := postJSON(t, router, "/api/scheduling/emergency", gin.H{
		"businessId":  "b1",
		"customerZip": "94110",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result models.BookingResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	require.Len(t, result.AssignedTechnicians, 1)
	assert.Equal(t, "t1", result.AssignedTechnicians[0].ID)
}

func TestMatchTechnicianHandler(t *testing.T) {
	router := newTestRouter(newTestBundle(t))
	w := postJSON(t, router, "/api/dispatch/match", gin.H{
		"businessId": "b1",
		"job":        gin.H{"serviceType": "plumbing"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Matched     bool                     `json:"matched"`
		Technicians []models.TechnicianScore `json:"technicians"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Matched)
	require.Len(t, resp.Technicians, 1)
	assert.Equal(t, "t1", resp.Technicians[0].TechnicianID)
}

func TestNotifyAssignmentHandlerWithoutChannel(t *testing.T) {
	router := newTestRouter(newTestBundle(t))
	w := postJSON(t, router, "/api/dispatch/notify", gin.H{
		"technician": gin.H{"technicianId": "t1", "name": "Alice"},
		"assignment": gin.H{"serviceType": "plumbing"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Sent    bool   `json:"sent"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Sent)
	assert.Contains(t, resp.Message, "Service: plumbing")
}
