package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookora/booking-api/internal/cache"
	"github.com/bookora/booking-api/internal/dto"
	"github.com/bookora/booking-api/internal/httperr"
	"github.com/bookora/booking-api/internal/httpresp"
	"github.com/bookora/booking-api/internal/models"
	"github.com/bookora/booking-api/internal/validators"
)

type ServiceHandler struct {
	db       *gorm.DB
	cache    *cache.SearchCache
	provider *ProviderHandler
}

func NewServiceHandler(db *gorm.DB, searchCache *cache.SearchCache, provider *ProviderHandler) *ServiceHandler {
	return &ServiceHandler{
		db:       db,
		cache:    searchCache,
		provider: provider,
	}
}

// --------- Requests ---------

type CreateOfferingRequest struct {
	Name            string  `json:"name" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
	Price           float64 `json:"price" binding:"min=0"`
	Description     string  `json:"description"`
}

type UpdateOfferingRequest struct {
	DurationMinutes int     `json:"duration_minutes" binding:"min=0"`
	Price           float64 `json:"price" binding:"min=0"`
	Description     string  `json:"description"`
}

type ToggleAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// --------- Offerings ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	providerID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	provider, ok := h.provider.ownedProvider(c, providerID)
	if !ok {
		return
	}

	var req CreateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	normalized := validators.NormalizeName(req.Name)

	// Services are shared across providers; reuse by normalized name.
	var service models.Service
	if err := h.db.Where("normalized_name = ?", normalized).First(&service).Error; err != nil {
		service = models.Service{
			Name:           req.Name,
			NormalizedName: normalized,
		}
		if err := h.db.Create(&service).Error; err != nil {
			httperr.Internal(c, "failed_to_create_service", "Could not save the service.")
			return
		}
	}

	var count int64
	h.db.Model(&models.ProviderService{}).
		Where("service_provider_id = ? AND service_id = ?", provider.ID, service.ID).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "offering_already_exists", "This provider already offers the service.")
		return
	}

	offering := models.ProviderService{
		ServiceProviderID: provider.ID,
		ServiceID:         service.ID,
		DurationMinutes:   req.DurationMinutes,
		Price:             req.Price,
		Description:       req.Description,
		IsAvailable:       true,
	}

	if err := h.db.Create(&offering).Error; err != nil {
		httperr.Internal(c, "failed_to_create_offering", "Could not save the offering.")
		return
	}

	h.cache.Invalidate(c.Request.Context())

	offering.Service = service
	httpresp.Created(c, offering)
}

func (h *ServiceHandler) ListForProvider(c *gin.Context) {
	providerID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var offerings []models.ProviderService
	if err := h.db.
		Preload("Service").
		Where("service_provider_id = ?", providerID).
		Order("service_id ASC").
		Find(&offerings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_offerings", "Could not list offerings.")
		return
	}

	httpresp.List(c, offerings)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	providerID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	serviceID, ok := paramUint(c, "serviceId")
	if !ok {
		return
	}

	var offering models.ProviderService
	if err := h.db.
		Preload("Service").
		Where("service_provider_id = ? AND service_id = ?", providerID, serviceID).
		First(&offering).Error; err != nil {
		httperr.NotFound(c, "offering_not_found", "Offering not found.")
		return
	}

	httpresp.OK(c, offering)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	offering, ok := h.ownedOffering(c)
	if !ok {
		return
	}

	var req UpdateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// Duration edits only size future bookings; existing appointments
	// keep the interval snapshotted at creation.
	if req.DurationMinutes > 0 {
		offering.DurationMinutes = req.DurationMinutes
	}
	if req.Price > 0 {
		offering.Price = req.Price
	}
	if req.Description != "" {
		offering.Description = req.Description
	}

	if err := h.db.Save(offering).Error; err != nil {
		httperr.Internal(c, "failed_to_update_offering", "Could not update the offering.")
		return
	}

	h.cache.Invalidate(c.Request.Context())

	httpresp.OK(c, offering)
}

func (h *ServiceHandler) ToggleAvailability(c *gin.Context) {
	offering, ok := h.ownedOffering(c)
	if !ok {
		return
	}

	var req ToggleAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	offering.IsAvailable = req.IsAvailable
	if err := h.db.Save(offering).Error; err != nil {
		httperr.Internal(c, "failed_to_update_offering", "Could not update the offering.")
		return
	}

	h.cache.Invalidate(c.Request.Context())

	httpresp.OK(c, offering)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	offering, ok := h.ownedOffering(c)
	if !ok {
		return
	}

	if err := h.db.
		Where("service_provider_id = ? AND service_id = ?", offering.ServiceProviderID, offering.ServiceID).
		Delete(&models.ProviderService{}).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_offering", "Could not delete the offering.")
		return
	}

	h.cache.Invalidate(c.Request.Context())

	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) ownedOffering(c *gin.Context) (*models.ProviderService, bool) {
	providerID, ok := paramUint(c, "id")
	if !ok {
		return nil, false
	}
	serviceID, ok := paramUint(c, "serviceId")
	if !ok {
		return nil, false
	}

	if _, ok := h.provider.ownedProvider(c, providerID); !ok {
		return nil, false
	}

	var offering models.ProviderService
	if err := h.db.
		Where("service_provider_id = ? AND service_id = ?", providerID, serviceID).
		First(&offering).Error; err != nil {
		httperr.NotFound(c, "offering_not_found", "Offering not found.")
		return nil, false
	}

	return &offering, true
}

// --------- Search ---------

func (h *ServiceHandler) Search(c *gin.Context) {
	h.search(c, 0, false)
}

// TopSearch returns at most five available offerings, for typeahead.
func (h *ServiceHandler) TopSearch(c *gin.Context) {
	h.search(c, 5, true)
}

func (h *ServiceHandler) search(c *gin.Context, limit int, availableOnly bool) {
	query := validators.NormalizeName(c.Param("query"))
	if query == "" {
		httperr.BadRequest(c, "missing_query", "A search query is required.")
		return
	}

	cacheKey := query
	if availableOnly {
		cacheKey = "top:" + query
	}

	var results []dto.SearchServiceDTO
	if h.cache.Get(c.Request.Context(), cacheKey, &results) {
		httpresp.List(c, results)
		return
	}

	q := h.db.
		Model(&models.ProviderService{}).
		Select(`provider_services.service_id,
                services.name AS service_name,
                provider_services.duration_minutes,
                provider_services.price,
                provider_services.is_available,
                provider_services.service_provider_id,
                service_providers.name AS service_provider_name`).
		Joins("JOIN services ON services.id = provider_services.service_id").
		Joins("JOIN service_providers ON service_providers.id = provider_services.service_provider_id").
		Where("services.normalized_name LIKE ?", "%"+query+"%")

	if availableOnly {
		q = q.Where("provider_services.is_available = true")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(&results).Error; err != nil {
		httperr.Internal(c, "search_failed", "Could not search services.")
		return
	}

	if len(results) == 0 {
		httperr.NotFound(c, "no_services_found", "No services found.")
		return
	}

	h.cache.Set(c.Request.Context(), cacheKey, results)

	httpresp.List(c, results)
}
