package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"go-talentflow-backend/internal/delivery/http/middleware"
	"go-talentflow-backend/internal/delivery/http/response"
	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/pkg/apperror"
	"go-talentflow-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(api *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	apps := api.Group("/applications")

	candidate := apps.Group("", middleware.RequireRole(domain.RoleCandidate))
	{
		candidate.POST("/apply/:jobId", handler.Apply)
		candidate.GET("/my", handler.MyApplications)
	}

	staff := apps.Group("", middleware.RequireRole(domain.RoleRecruiter, domain.RoleAdmin))
	{
		staff.GET("/job/:jobId", handler.ListByJob)
		staff.GET("/job/:jobId/export", handler.ExportByJob)
		staff.PUT("/:id/status", handler.UpdateStatus)
	}
}

// ApplyRequest carries the resume pointer for an application. The link is an
// opaque string; it does not have to parse as a URL.
type ApplyRequest struct {
	ResumeLink string `json:"resumeLink" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Apply godoc
// @Summary      Apply for a job
// @Description  Only CANDIDATE can apply; one application per job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        jobId        path  int           true  "Job ID"
// @Param        application  body  ApplyRequest  true  "Application JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/apply/{jobId} [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Validation failed", validation.Fields(err)))
		return
	}

	app, err := h.appUC.Apply(c.Request.Context(), jobID, req.ResumeLink)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// MyApplications godoc
// @Summary      Get my applications
// @Description  Returns the authenticated candidate's applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /applications/my [get]
// @Security     BearerAuth
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	apps, err := h.appUC.MyApplications(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved successfully", apps)
}

// ListByJob godoc
// @Summary      Get applications for a job
// @Description  Only the job poster or ADMIN can view a job's applications
// @Tags         applications
// @Produce      json
// @Param        jobId  path  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/job/{jobId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	apps, err := h.appUC.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved successfully", apps)
}

// ExportByJob godoc
// @Summary      Export applications for a job as XLSX
// @Description  Downloads a spreadsheet of a job's applications
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        jobId  path  int  true  "Job ID"
// @Success      200  {file}    file
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/job/{jobId}/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ExportByJob(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	content, filename, err := h.appUC.ExportByJob(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, content)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Only the job poster or ADMIN can update an application's status
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path  int                  true  "Application ID"
// @Param        status  body  UpdateStatusRequest  true  "Status JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Validation failed", validation.Fields(err)))
		return
	}

	app, err := h.appUC.UpdateStatus(c.Request.Context(), id, domain.ApplicationStatus(req.Status))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated successfully", app)
}
