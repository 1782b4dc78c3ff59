package controllers

import (
	"net/http"

	"laundrypro-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateRingSlotInput struct {
	TimeRange string `json:"time_range" binding:"required"`
}

type BookAppointmentInput struct {
	CustomerID uint `json:"customer_id" binding:"required"`
	RingSlotID uint `json:"ring_slot_id" binding:"required"`
}

func (h *Handler) CreateRingSlot(c *gin.Context) {
	var input CreateRingSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	slot, err := h.service.RegisterTimeSlot(c.Request.Context(), input.TimeRange)
	if err != nil {
		h.respondServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *Handler) GetRingSlots(c *gin.Context) {
	slots, err := h.service.ListTimeSlots(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var input BookAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := h.service.BookAppointment(c.Request.Context(), input.CustomerID, input.RingSlotID); err != nil {
		h.respondServiceError(c, err, "")
		return
	}

	utils.RespondWithMessage(c, http.StatusCreated, "Appointment booked")
}

func (h *Handler) GetAppointments(c *gin.Context) {
	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, appointments)
}
