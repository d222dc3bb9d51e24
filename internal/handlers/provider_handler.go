package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookora/booking-api/internal/audit"
	"github.com/bookora/booking-api/internal/httperr"
	"github.com/bookora/booking-api/internal/httpresp"
	"github.com/bookora/booking-api/internal/media"
	"github.com/bookora/booking-api/internal/middleware"
	"github.com/bookora/booking-api/internal/models"
)

type ProviderHandler struct {
	db      *gorm.DB
	storage *media.Storage
	audit   *audit.Dispatcher
}

func NewProviderHandler(db *gorm.DB, storage *media.Storage, auditDispatcher *audit.Dispatcher) *ProviderHandler {
	return &ProviderHandler{
		db:      db,
		storage: storage,
		audit:   auditDispatcher,
	}
}

// --------- Requests ---------

type BusinessHoursConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsOpen    bool   `json:"is_open"`
}

type LocationRequest struct {
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	ZipCode string `json:"zip_code" binding:"required"`
}

type CreateProviderRequest struct {
	Name          string                `json:"name" binding:"required"`
	Description   string                `json:"description"`
	PhoneNumber   string                `json:"phone_number"`
	Location      LocationRequest       `json:"location" binding:"required"`
	BusinessHours []BusinessHoursConfig `json:"business_hours" binding:"required"`
}

type UpdateProviderRequest struct {
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	PhoneNumber   string                `json:"phone_number"`
	BusinessHours []BusinessHoursConfig `json:"business_hours"`
}

// --------- Helpers ---------

func validateBusinessHours(hours []BusinessHoursConfig) error {
	if len(hours) == 0 {
		return fmt.Errorf("business hours are required")
	}

	for _, bh := range hours {
		if !bh.IsOpen {
			continue
		}
		if bh.OpenTime == "" || bh.CloseTime == "" {
			return fmt.Errorf("open and close times are required for weekday %d", bh.Weekday)
		}
		if bh.OpenTime >= bh.CloseTime {
			return fmt.Errorf("open time must be before close time for weekday %d", bh.Weekday)
		}
	}

	return nil
}

func (h *ProviderHandler) getOrCreateLocation(req LocationRequest) (*models.Location, error) {
	var location models.Location
	err := h.db.
		Where("address = ? AND city = ? AND zip_code = ?", req.Address, req.City, req.ZipCode).
		First(&location).Error

	if err == nil {
		return &location, nil
	}

	location = models.Location{
		Address: req.Address,
		City:    req.City,
		ZipCode: req.ZipCode,
	}

	if err := h.db.Create(&location).Error; err != nil {
		return nil, err
	}

	return &location, nil
}

func (h *ProviderHandler) ownedProvider(c *gin.Context, providerID uint) (*models.ServiceProvider, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var provider models.ServiceProvider
	if err := h.db.First(&provider, providerID).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Service provider not found.")
		return nil, false
	}

	if provider.OwnerID != userID {
		httperr.Forbidden(c, "not_owner", "You do not own this service provider.")
		return nil, false
	}

	return &provider, true
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.")
		return 0, false
	}
	return uint(v), true
}

// --------- Handlers ---------

func (h *ProviderHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := validateBusinessHours(req.BusinessHours); err != nil {
		httperr.BadRequest(c, "invalid_business_hours", err.Error())
		return
	}

	var count int64
	h.db.Model(&models.ServiceProvider{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "provider_already_exists", "A service provider with this name already exists.")
		return
	}

	location, err := h.getOrCreateLocation(req.Location)
	if err != nil {
		httperr.Internal(c, "failed_to_create_location", "Could not save the location.")
		return
	}

	provider := models.ServiceProvider{
		Name:        req.Name,
		Description: req.Description,
		PhoneNumber: req.PhoneNumber,
		LocationID:  location.ID,
		OwnerID:     userID,
	}

	if err := h.db.Create(&provider).Error; err != nil {
		httperr.Internal(c, "failed_to_create_provider", "Could not save the service provider.")
		return
	}

	hours := make([]models.BusinessHours, 0, len(req.BusinessHours))
	for _, bh := range req.BusinessHours {
		hours = append(hours, models.BusinessHours{
			ServiceProviderID: provider.ID,
			Weekday:           bh.Weekday,
			OpenTime:          bh.OpenTime,
			CloseTime:         bh.CloseTime,
			IsOpen:            bh.IsOpen,
		})
	}
	if err := h.db.Create(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_create_business_hours", "Could not save business hours.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ServiceProviderID: provider.ID,
		UserID:            &userID,
		Action:            "provider_created",
		Entity:            "service_provider",
		EntityID:          &provider.ID,
	})

	provider.Location = *location
	httpresp.Created(c, provider)
}

func (h *ProviderHandler) List(c *gin.Context) {
	var providers []models.ServiceProvider
	if err := h.db.Preload("Location").Order("id ASC").Find(&providers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_providers", "Could not list service providers.")
		return
	}

	httpresp.List(c, providers)
}

func (h *ProviderHandler) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var provider models.ServiceProvider
	if err := h.db.Preload("Location").First(&provider, id).Error; err != nil {
		httperr.NotFound(c, "provider_not_found", "Service provider not found.")
		return
	}

	httpresp.OK(c, provider)
}

func (h *ProviderHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var providers []models.ServiceProvider
	if err := h.db.
		Preload("Location").
		Where("owner_id = ?", userID).
		Order("id ASC").
		Find(&providers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_providers", "Could not list service providers.")
		return
	}

	httpresp.List(c, providers)
}

// ListInMyCity returns providers located in the caller's registered city.
func (h *ProviderHandler) ListInMyCity(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var providers []models.ServiceProvider
	if err := h.db.
		Preload("Location").
		Joins("JOIN locations ON locations.id = service_providers.location_id").
		Where("LOWER(locations.city) = LOWER(?)", user.City).
		Order("service_providers.id ASC").
		Find(&providers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_providers", "Could not list service providers.")
		return
	}

	httpresp.List(c, providers)
}

func (h *ProviderHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	provider, ok := h.ownedProvider(c, id)
	if !ok {
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != "" {
		provider.Name = req.Name
	}
	if req.Description != "" {
		provider.Description = req.Description
	}
	if req.PhoneNumber != "" {
		provider.PhoneNumber = req.PhoneNumber
	}

	if err := h.db.Save(provider).Error; err != nil {
		httperr.Internal(c, "failed_to_update_provider", "Could not update the service provider.")
		return
	}

	// Business hours are replaced wholesale when present.
	if len(req.BusinessHours) > 0 {
		if err := validateBusinessHours(req.BusinessHours); err != nil {
			httperr.BadRequest(c, "invalid_business_hours", err.Error())
			return
		}

		if err := h.db.
			Where("service_provider_id = ?", provider.ID).
			Delete(&models.BusinessHours{}).Error; err != nil {
			httperr.Internal(c, "failed_to_clear_business_hours", "Could not update business hours.")
			return
		}

		hours := make([]models.BusinessHours, 0, len(req.BusinessHours))
		for _, bh := range req.BusinessHours {
			hours = append(hours, models.BusinessHours{
				ServiceProviderID: provider.ID,
				Weekday:           bh.Weekday,
				OpenTime:          bh.OpenTime,
				CloseTime:         bh.CloseTime,
				IsOpen:            bh.IsOpen,
			})
		}
		if err := h.db.Create(&hours).Error; err != nil {
			httperr.Internal(c, "failed_to_save_business_hours", "Could not update business hours.")
			return
		}
	}

	httpresp.OK(c, provider)
}

func (h *ProviderHandler) Delete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	provider, ok := h.ownedProvider(c, id)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	// Appointments, offerings and hours cascade through FK constraints;
	// hours rows carry no FK object in gorm so they are removed here.
	if err := h.db.Where("service_provider_id = ?", provider.ID).Delete(&models.BusinessHours{}).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_provider", "Could not delete the service provider.")
		return
	}

	if err := h.db.Delete(provider).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_provider", "Could not delete the service provider.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ServiceProviderID: provider.ID,
		UserID:            &userID,
		Action:            "provider_deleted",
		Entity:            "service_provider",
		EntityID:          &provider.ID,
	})

	c.Status(http.StatusNoContent)
}

func (h *ProviderHandler) GetBusinessHours(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var hours []models.BusinessHours
	if err := h.db.
		Where("service_provider_id = ?", id).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_get_business_hours", "Could not load business hours.")
		return
	}

	httpresp.List(c, hours)
}

func (h *ProviderHandler) UploadImage(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	provider, ok := h.ownedProvider(c, id)
	if !ok {
		return
	}

	if !h.storage.Enabled() {
		httperr.Write(c, http.StatusServiceUnavailable, "uploads_disabled", "Image uploads are not configured.")
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}
	defer file.Close()

	url, err := h.storage.UploadProviderImage(c.Request.Context(), provider.ID, file)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Could not store the image.")
		return
	}

	provider.ImageURL = url
	if err := h.db.Save(provider).Error; err != nil {
		httperr.Internal(c, "failed_to_update_provider", "Could not save the image URL.")
		return
	}

	httpresp.OK(c, gin.H{"image_url": url})
}
