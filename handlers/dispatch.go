package handlers

import (
	"net/http"

	"fieldline/models"
	"fieldline/services/dispatch"
	"fieldline/utils"

	"github.com/gin-gonic/gin"
)

// MatchRequest asks the dispatcher for the best technician(s) for a job.
type MatchRequest struct {
	BusinessID       string                   `json:"businessId" binding:"required"`
	Job              models.JobRequirements   `json:"job" binding:"required"`
	CustomerLocation *models.CustomerLocation `json:"customerLocation,omitempty"`
	Count            int                      `json:"count,omitempty"`
}

// MatchTechnicianHandler scores the roster against the job under the
// business's dispatch mode and returns the ranked result.
func (hb *HandlerBundle) MatchTechnicianHandler(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	business, err := hb.Businesses.GetByID(c.Request.Context(), req.BusinessID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to load business", err.Error())
		return
	}
	technicians, err := hb.Technicians.ListByBusiness(c.Request.Context(), req.BusinessID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load technicians", err.Error())
		return
	}

	count := req.Count
	if count <= 0 {
		count = 1
	}
	scores := hb.Matcher.MatchTechnicians(technicians, req.Job, business.DispatchRules, req.CustomerLocation, count)
	if len(scores) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"matched": false,
			"message": "No suitable technician; assignment requires manual dispatch.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"matched": true, "technicians": scores})
}

// NotifyRequest carries a completed assignment to push out to the technician.
type NotifyRequest struct {
	Technician models.TechnicianScore `json:"technician" binding:"required"`
	Assignment dispatch.Assignment    `json:"assignment" binding:"required"`
}

// NotifyAssignmentHandler builds the dispatch message and hands it to the
// configured delivery channel.
func (hb *HandlerBundle) NotifyAssignmentHandler(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	message := dispatch.AssignmentMessage(req.Assignment)
	if hb.Notifier != nil {
		if err := hb.Notifier.SendAssignment(c.Request.Context(), req.Technician, message); err != nil {
			utils.JSONError(c, http.StatusBadGateway, "failed to deliver assignment", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"sent": hb.Notifier != nil, "message": message})
}
