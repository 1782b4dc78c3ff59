package controllers

import (
	"net/http"
	"strconv"

	"laundrypro-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateLaundryInput struct {
	CustomerID uint    `json:"customer_id" binding:"required"`
	Status     string  `json:"status"`
	ShelfCode  *string `json:"shelf_code"`
}

type UpdateLaundryInput struct {
	Status    string  `json:"status" binding:"required"`
	ShelfCode *string `json:"shelf_code"`
}

func (h *Handler) CreateLaundry(c *gin.Context) {
	var input CreateLaundryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, err := h.service.CreateLaundryItem(c.Request.Context(), input.CustomerID, input.Status, input.ShelfCode)
	if err != nil {
		h.respondServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) UpdateLaundry(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid laundry ID format")
		return
	}

	var input UpdateLaundryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := h.service.UpdateLaundryStatus(c.Request.Context(), uint(id), input.Status, input.ShelfCode); err != nil {
		h.respondServiceError(c, err, "")
		return
	}

	utils.RespondWithMessage(c, http.StatusOK, "Laundry updated")
}

// GetLaundry lists laundry items, filtered by ?status= when given.
func (h *Handler) GetLaundry(c *gin.Context) {
	items, err := h.service.ListLaundry(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.respondServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetLaundryWithCustomer(c *gin.Context) {
	rows, err := h.service.ListLaundryWithCustomer(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, rows)
}
