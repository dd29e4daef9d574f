package patient

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medhq/hospital-api/internal/handler"
	"github.com/medhq/hospital-api/internal/model"
	"github.com/medhq/hospital-api/internal/service/patient"
	apperrors "github.com/medhq/hospital-api/pkg/errors"
)

type Handler struct {
	service *patient.Service
}

func NewHandler(service *patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.List)
		patients.POST("", h.Create)
		patients.GET("/:id", h.Get)
		patients.PUT("/:id", h.Update)
		patients.DELETE("/:id", h.Delete)

		patients.PATCH("/:id/address", h.PatchAddress)
		patients.PATCH("/:id/doctor", h.PatchDoctor)
		patients.PATCH("/:id/bill", h.PatchBill)

		// Diseases are positional: an index is only valid against the list
		// the caller last fetched.
		patients.POST("/:id/diseases", h.AddDisease)
		patients.PUT("/:id/diseases/:index", h.UpdateDisease)
		patients.DELETE("/:id/diseases/:index", h.DeleteDisease)

		patients.POST("/:id/treatments", h.AddTreatment)
		patients.PUT("/:id/treatments/:itemId", h.UpdateTreatment)
		patients.DELETE("/:id/treatments/:itemId", h.DeleteTreatment)

		patients.POST("/:id/medicines", h.AddMedicine)
		patients.PUT("/:id/medicines/:itemId", h.UpdateMedicine)
		patients.DELETE("/:id/medicines/:itemId", h.DeleteMedicine)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) List(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted"})
}

func (h *Handler) PatchAddress(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.AddressPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.PatchAddress(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) PatchDoctor(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.DoctorSnapshotPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.PatchDoctor(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) PatchBill(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.BillPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.PatchBill(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) AddDisease(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.DiseasePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.AddDisease(c.Request.Context(), id, req.Name)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) UpdateDisease(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}
	index, ok := h.diseaseIndex(c)
	if !ok {
		return
	}

	var req model.DiseasePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.UpdateDisease(c.Request.Context(), id, index, req.Name)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteDisease(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}
	index, ok := h.diseaseIndex(c)
	if !ok {
		return
	}

	updated, err := h.service.DeleteDisease(c.Request.Context(), id, index)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) AddTreatment(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.TreatmentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.AddTreatment(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) UpdateTreatment(c *gin.Context) {
	id, itemID, ok := h.patientItemIDs(c)
	if !ok {
		return
	}

	var req model.TreatmentPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.UpdateTreatment(c.Request.Context(), id, itemID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteTreatment(c *gin.Context) {
	id, itemID, ok := h.patientItemIDs(c)
	if !ok {
		return
	}

	updated, err := h.service.DeleteTreatment(c.Request.Context(), id, itemID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) AddMedicine(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.MedicinePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.AddMedicine(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) UpdateMedicine(c *gin.Context) {
	id, itemID, ok := h.patientItemIDs(c)
	if !ok {
		return
	}

	var req model.MedicinePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.UpdateMedicine(c.Request.Context(), id, itemID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteMedicine(c *gin.Context) {
	id, itemID, ok := h.patientItemIDs(c)
	if !ok {
		return
	}

	updated, err := h.service.DeleteMedicine(c.Request.Context(), id, itemID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) patientID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handler.Error(c, apperrors.Validation("invalid patient ID"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) patientItemIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, ok := h.patientID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		handler.Error(c, apperrors.Validation("invalid item ID"))
		return uuid.Nil, uuid.Nil, false
	}
	return id, itemID, true
}

func (h *Handler) diseaseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		handler.Error(c, apperrors.Validation("invalid disease index"))
		return 0, false
	}
	return index, true
}
