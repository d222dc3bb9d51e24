package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/bookora/booking-api/internal/domain/appointment"
	"github.com/bookora/booking-api/internal/dto"
	"github.com/bookora/booking-api/internal/httperr"
	"github.com/bookora/booking-api/internal/httpresp"
	"github.com/bookora/booking-api/internal/middleware"
	"github.com/bookora/booking-api/internal/models"
	usecase "github.com/bookora/booking-api/internal/usecase/appointment"
)

const defaultDaysToShow = 30

type AppointmentHandler struct {
	db *gorm.DB

	availableTimes *usecase.GetAvailableTimes
	availableDates *usecase.GetAvailableDates
	timeAvailable  *usecase.IsTimeAvailable
	create         *usecase.CreateAppointment
	confirm        *usecase.ConfirmAppointment
	cancel         *usecase.CancelAppointment
	delete         *usecase.DeleteAppointment
}

func NewAppointmentHandler(
	db *gorm.DB,
	availableTimes *usecase.GetAvailableTimes,
	availableDates *usecase.GetAvailableDates,
	timeAvailable *usecase.IsTimeAvailable,
	create *usecase.CreateAppointment,
	confirm *usecase.ConfirmAppointment,
	cancel *usecase.CancelAppointment,
	delete *usecase.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		availableTimes: availableTimes,
		availableDates: availableDates,
		timeAvailable:  timeAvailable,
		create:         create,
		confirm:        confirm,
		cancel:         cancel,
		delete:         delete,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ServiceProviderID uint   `json:"service_provider_id" binding:"required"`
	ServiceID         uint   `json:"service_id" binding:"required"`
	StartTime         string `json:"start_time" binding:"required"`
	Notes             string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --------- Availability ---------

func (h *AppointmentHandler) GetAvailableSlots(c *gin.Context) {
	providerID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	serviceID, ok := paramUint(c, "serviceId")
	if !ok {
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be in YYYY-MM-DD format.")
		return
	}

	slots, err := h.availableTimes.Execute(c.Request.Context(), domain.AvailabilityInput{
		ServiceProviderID: providerID,
		ServiceID:         serviceID,
		Date:              date,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.List(c, slots)
}

func (h *AppointmentHandler) GetAvailableDates(c *gin.Context) {
	providerID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	serviceID, ok := paramUint(c, "serviceId")
	if !ok {
		return
	}

	daysToShow := defaultDaysToShow
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httperr.BadRequest(c, "invalid_days", "Days must be a positive number.")
			return
		}
		daysToShow = n
	}

	startDate, err := parseDate(c.Query("start_date"))
	if err != nil {
		if c.Query("start_date") != "" {
			httperr.BadRequest(c, "invalid_date", "Start date must be in YYYY-MM-DD format.")
			return
		}
		startDate = startOfToday()
	}

	dates, err := h.availableDates.Execute(
		c.Request.Context(), providerID, serviceID, startDate, daysToShow)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	labels := make([]string, 0, len(dates))
	for _, d := range dates {
		labels = append(labels, d.Format(dateLayout))
	}

	httpresp.List(c, labels)
}

func (h *AppointmentHandler) CheckTimeAvailable(c *gin.Context) {
	providerID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	serviceID, ok := paramUint(c, "serviceId")
	if !ok {
		return
	}

	start, err := parseDateTime(c.Query("start"))
	if err != nil {
		httperr.BadRequest(c, "invalid_start", "Start must be an RFC 3339 timestamp.")
		return
	}

	var offering models.ProviderService
	if err := h.db.
		Where("service_provider_id = ? AND service_id = ?", providerID, serviceID).
		First(&offering).Error; err != nil {
		httperr.NotFound(c, "offering_not_found", "Offering not found.")
		return
	}

	end := start.Add(time.Duration(offering.DurationMinutes) * time.Minute)

	available, err := h.timeAvailable.Execute(
		c.Request.Context(), providerID, serviceID, start, end)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"start":     start,
		"end":       end,
		"available": available,
	})
}

// --------- Booking ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := parseDateTime(req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_start", "Start time must be an RFC 3339 timestamp.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		ServiceProviderID: req.ServiceProviderID,
		ServiceID:         req.ServiceID,
		CustomerID:        userID,
		StartTime:         start,
		Notes:             req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	list, err := h.listAppointments(c, "appointments.customer_id = ?", userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, list)
}

// ListForMyProviders returns the agenda of every provider the caller
// owns, for the provider-side dashboard.
func (h *AppointmentHandler) ListForMyProviders(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	list, err := h.listAppointments(c, "service_providers.owner_id = ?", userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) listAppointments(c *gin.Context, where string, arg any) ([]dto.AppointmentListDTO, error) {
	var list []dto.AppointmentListDTO

	err := h.db.WithContext(c.Request.Context()).
		Table("appointments").
		Select(`appointments.id,
                appointments.start_time,
                appointments.end_time,
                appointments.status,
                appointments.notes,
                appointments.service_id,
                services.name AS service_name,
                appointments.service_provider_id,
                service_providers.name AS service_provider_name`).
		Joins("JOIN services ON services.id = appointments.service_id").
		Joins("JOIN service_providers ON service_providers.id = appointments.service_provider_id").
		Where(where, arg).
		Order("appointments.start_time ASC").
		Scan(&list).Error

	return list, err
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uint)

	// Visible only to the booking customer or the provider owner.
	var authorized int64
	h.db.Table("appointments").
		Joins("JOIN service_providers ON service_providers.id = appointments.service_provider_id").
		Where("appointments.id = ? AND (appointments.customer_id = ? OR service_providers.owner_id = ?)",
			id, userID, userID).
		Count(&authorized)
	if authorized == 0 {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	list, err := h.listAppointments(c, "appointments.id = ?", id)
	if err != nil || len(list) == 0 {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	httpresp.OK(c, list[0])
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	switch req.Status {
	case string(domain.StatusConfirmed):
		ap, err := h.confirm.Execute(c.Request.Context(), id, userID)
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		httpresp.OK(c, ap)
	case string(domain.StatusCancelled):
		ap, err := h.cancel.Execute(c.Request.Context(), id, userID)
		if err != nil {
			writeBusinessError(c, err)
			return
		}
		httpresp.OK(c, ap)
	default:
		httperr.BadRequest(c, "invalid_status", "Status must be confirmed or cancelled.")
	}
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if err := h.delete.Execute(c.Request.Context(), id, userID); err != nil {
		writeBusinessError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// --------- Error mapping ---------

var businessMessages = map[string]string{
	httperr.CodeNotFound:           "Appointment not found.",
	httperr.CodeServiceUnavailable: "This service is not currently offered.",
	httperr.CodeClosedOnDate:       "The provider is closed on that date.",
	httperr.CodeInThePast:          "Appointments must start in the future.",
	httperr.CodeSlotConflict:       "The slot was already taken.",
	httperr.CodeInvalidState:       "The appointment can no longer change state.",
}

func writeBusinessError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	msg, known := businessMessages[code]
	if !known {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch code {
	case httperr.CodeNotFound:
		httperr.NotFound(c, code, msg)
	case httperr.CodeSlotConflict:
		httperr.Conflict(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}
}
