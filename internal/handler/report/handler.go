package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medhq/hospital-api/internal/handler"
	"github.com/medhq/hospital-api/internal/model"
	"github.com/medhq/hospital-api/internal/service/report"
)

type Handler struct {
	service *report.Service
}

func NewHandler(service *report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("/search", h.Search)

		aggregate := patients.Group("/aggregate")
		{
			aggregate.GET("/summary", h.Summary)
			aggregate.GET("/by-city", h.ByCity)
			aggregate.GET("/by-specialization", h.BySpecialization)
			aggregate.GET("/top-diseases", h.TopDiseases)
			aggregate.GET("/monthly-revenue", h.MonthlyRevenue)
		}
	}
}

func (h *Handler) Search(c *gin.Context) {
	var filters model.PatientSearch
	if err := c.ShouldBindQuery(&filters); err != nil {
		handler.BindError(c, err)
		return
	}

	patients, err := h.service.Search(c.Request.Context(), &filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) ByCity(c *gin.Context) {
	rows, err := h.service.ByCity(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) BySpecialization(c *gin.Context) {
	rows, err := h.service.BySpecialization(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) TopDiseases(c *gin.Context) {
	rows, err := h.service.TopDiseases(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) MonthlyRevenue(c *gin.Context) {
	rows, err := h.service.MonthlyRevenue(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
