package v1

import (
	"net/http"
	"strconv"

	"go-talentflow-backend/internal/delivery/http/middleware"
	"go-talentflow-backend/internal/delivery/http/response"
	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/pkg/apperror"
	"go-talentflow-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(api *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := api.Group("/jobs")

	// Reads are public
	jobs.GET("", handler.List)
	jobs.GET("/search", handler.Search)
	jobs.GET("/:id", handler.GetDetails)

	// Writes require the recruiter or admin role; ownership is checked in
	// the usecase on the resolved job.
	staff := jobs.Group("", middleware.RequireRole(domain.RoleRecruiter, domain.RoleAdmin))
	{
		staff.POST("", handler.Create)
		staff.PUT("/:id", handler.Update)
		staff.DELETE("/:id", handler.Delete)
	}
}

type JobRequest struct {
	Title           string   `json:"title" binding:"required,min=3,max=200"`
	Description     string   `json:"description" binding:"required,min=10"`
	Location        string   `json:"location" binding:"required"`
	EmploymentType  string   `json:"employmentType" binding:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	RequiredSkills  []string `json:"requiredSkills" binding:"required,min=1,dive,required"`
	ExperienceLevel string   `json:"experienceLevel" binding:"required"`
}

func (r JobRequest) toInput() domain.JobInput {
	return domain.JobInput{
		Title:           r.Title,
		Description:     r.Description,
		Location:        r.Location,
		EmploymentType:  domain.EmploymentType(r.EmploymentType),
		RequiredSkills:  r.RequiredSkills,
		ExperienceLevel: r.ExperienceLevel,
	}
}

func pageQuery(c *gin.Context) domain.PageQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	return domain.PageQuery{
		Page:    page,
		Size:    size,
		SortBy:  c.DefaultQuery("sortBy", "createdAt"),
		SortDir: c.DefaultQuery("sortDir", "DESC"),
	}
}

func pagePayload(jobs []domain.Job, total int64, q domain.PageQuery) gin.H {
	return gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  q.Page,
		"size":  q.Size,
	}
}

// Create godoc
// @Summary      Create a new job
// @Description  Only RECRUITER and ADMIN can create jobs
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Validation failed", validation.Fields(err)))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), req.toInput())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created successfully", job)
}

// List godoc
// @Summary      Get all jobs
// @Description  Returns paginated list of all jobs
// @Tags         jobs
// @Produce      json
// @Param        page     query  int     false  "Page number (zero-based)"
// @Param        size     query  int     false  "Page size"
// @Param        sortBy   query  string  false  "Sort column"  default(createdAt)
// @Param        sortDir  query  string  false  "ASC or DESC"  default(DESC)
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	q := pageQuery(c)
	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), q)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved successfully", pagePayload(jobs, total, q))
}

// Search godoc
// @Summary      Search jobs
// @Description  Search jobs by skill, location, and status with pagination
// @Tags         jobs
// @Produce      json
// @Param        skill     query  string  false  "Exact skill match"
// @Param        location  query  string  false  "Location substring"
// @Param        status    query  string  false  "Job status"
// @Success      200  {object}  response.Response
// @Router       /jobs/search [get]
func (h *JobHandler) Search(c *gin.Context) {
	q := pageQuery(c)

	var status domain.JobStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := domain.ParseJobStatus(raw)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid status. Must be: OPEN or CLOSED"))
			return
		}
		status = parsed
	}

	filter := domain.SearchFilter{
		Skill:    c.Query("skill"),
		Location: c.Query("location"),
		Status:   status,
	}

	jobs, total, err := h.jobUC.SearchJobs(c.Request.Context(), filter, q)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved successfully", pagePayload(jobs, total, q))
}

// GetDetails godoc
// @Summary      Get job by ID
// @Description  Returns job details by ID
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved successfully", job)
}

// Update godoc
// @Summary      Update a job
// @Description  Only the job poster or ADMIN can update
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int         true  "Job ID"
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Validation failed", validation.Fields(err)))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), id, req.toInput())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// Delete godoc
// @Summary      Delete a job
// @Description  Only the job poster or ADMIN can delete; applications cascade
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}
