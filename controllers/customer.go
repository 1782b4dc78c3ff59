package controllers

import (
	"net/http"

	"laundrypro-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateCustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := h.service.RegisterCustomer(c.Request.Context(), input.Name, input.Phone)
	if err != nil {
		h.respondServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) GetCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, customers)
}

func (h *Handler) GetCustomerByPhone(c *gin.Context) {
	customer, err := h.service.CustomerByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		h.respondServiceError(c, err, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, customer)
}
