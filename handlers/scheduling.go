package handlers

import (
	"net/http"
	"time"

	"fieldline/models"
	"fieldline/services/scheduling"
	"fieldline/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityRequest is the payload for slot generation. PreferredTimeText
// carries the caller's spoken preference ("tomorrow afternoon") and, when it
// parses, overrides StartDate.
type AvailabilityRequest struct {
	BusinessID        string                 `json:"businessId" binding:"required"`
	Job               models.JobRequirements `json:"job" binding:"required"`
	StartDate         models.FlexTime        `json:"startDate,omitempty"`
	DaysToCheck       int                    `json:"daysToCheck,omitempty"`
	PreferredTimeText string                 `json:"preferredTimeText,omitempty"`
	VoiceSlots        int                    `json:"voiceSlots,omitempty"`
}

// GetAvailabilityHandler returns ranked open slots for a job.
func (hb *HandlerBundle) GetAvailabilityHandler(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	startDate := req.StartDate.Time
	if req.PreferredTimeText != "" {
		if t, ok := scheduling.ParsePreferredTime(req.PreferredTimeText, time.Now()); ok {
			startDate = t
		}
	}

	business, technicians, appointments, err := hb.loadContext(c.Request.Context(), req.BusinessID, defaultDate(startDate), req.DaysToCheck)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to load business context", err.Error())
		return
	}

	slots, err := hb.Engine.GetAvailableSlots(*business, req.Job, technicians, appointments, startDate, req.DaysToCheck)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to compute availability", err.Error())
		return
	}

	voiceSlots := req.VoiceSlots
	if voiceSlots <= 0 {
		voiceSlots = 3
	}
	c.JSON(http.StatusOK, gin.H{
		"slots":        slots,
		"voiceSummary": scheduling.FormatSlotsForVoice(slots, voiceSlots),
	})
}

// MultiDayRequest asks for a consecutive-open-day booking plan.
type MultiDayRequest struct {
	BusinessID string                 `json:"businessId" binding:"required"`
	Job        models.JobRequirements `json:"job" binding:"required"`
	StartDate  models.FlexTime        `json:"startDate,omitempty"`
}

// BookMultiDayHandler plans one slot per open day for a multi-day job.
func (hb *HandlerBundle) BookMultiDayHandler(c *gin.Context) {
	var req MultiDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	days := req.Job.Normalized().DaysNeeded
	business, technicians, appointments, err := hb.loadContext(c.Request.Context(), req.BusinessID, defaultDate(req.StartDate.Time), days*3)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to load business context", err.Error())
		return
	}

	result, err := hb.Engine.BookMultiDay(*business, req.Job, technicians, appointments, defaultDate(req.StartDate.Time))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to plan multi-day booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// TwoTechRequest asks for the earliest time two technicians are free together.
type TwoTechRequest struct {
	BusinessID    string                 `json:"businessId" binding:"required"`
	Job           models.JobRequirements `json:"job" binding:"required"`
	PreferredDate models.FlexTime        `json:"preferredDate,omitempty"`
}

// BookTwoTechHandler pairs two technicians on a shared start time.
func (hb *HandlerBundle) BookTwoTechHandler(c *gin.Context) {
	var req TwoTechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	business, technicians, appointments, err := hb.loadContext(c.Request.Context(), req.BusinessID, defaultDate(req.PreferredDate.Time), 14)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to load business context", err.Error())
		return
	}

	result, err := hb.Engine.BookTwoTech(*business, req.Job, technicians, appointments, req.PreferredDate.Time)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to pair technicians", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// EmergencyRequest asks for immediate dispatch to a customer zip.
type EmergencyRequest struct {
	BusinessID  string `json:"businessId" binding:"required"`
	CustomerZip string `json:"customerZip"`
}

// RouteEmergencyHandler finds the technician who can arrive soonest.
func (hb *HandlerBundle) RouteEmergencyHandler(c *gin.Context) {
	var req EmergencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	business, technicians, appointments, err := hb.loadContext(c.Request.Context(), req.BusinessID, time.Now(), 1)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to load business context", err.Error())
		return
	}

	result := hb.Engine.RouteEmergency(*business, technicians, appointments, req.CustomerZip)
	c.JSON(http.StatusOK, result)
}

// ConfirmRequest commits a chosen slot.
type ConfirmRequest struct {
	BusinessID string                 `json:"businessId" binding:"required"`
	Customer   models.Customer        `json:"customer"`
	Job        models.JobRequirements `json:"job" binding:"required"`
	Slot       models.TimeSlot        `json:"slot" binding:"required"`
}

// ConfirmSlotHandler books the slot, holding the interval against concurrent
// callers. A lost race comes back as a retryable failure result, not a 5xx.
func (hb *HandlerBundle) ConfirmSlotHandler(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	business, err := hb.Businesses.GetByID(c.Request.Context(), req.BusinessID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to load business", err.Error())
		return
	}

	result, err := hb.Booking.ConfirmSlot(c.Request.Context(), *business, req.Customer, req.Job, req.Slot)
	if err != nil {
		hb.Logger.Error("booking failed", zap.String("businessId", req.BusinessID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to confirm booking", err.Error())
		return
	}
	status := http.StatusOK
	if !result.Success {
		status = http.StatusConflict
	}
	c.JSON(status, result)
}

func defaultDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
