package controllers

import (
	"compras-app/services"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BatchController struct {
	DB *gorm.DB
}

func NewBatchController(db *gorm.DB) *BatchController {
	return &BatchController{DB: db}
}

type batchEditInput struct {
	Selection []services.SelectedOrder `json:"selection"`
	Changes   services.BatchChanges    `json:"changes"`
}

// BatchEdit applies the sparse patch to every selected order.
func (c *BatchController) BatchEdit(ctx *fiber.Ctx) error {
	var input batchEditInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	service := services.NewBatchService(c.DB)
	result, err := service.ApplyChanges(input.Selection, input.Changes, int(ctx.Locals("userID").(float64)))
	if err != nil {
		if errors.Is(err, services.ErrEmptySelection) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nenhuma ordem selecionada"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": result.Message, "data": result})
}

type selectionInput struct {
	Selection []services.SelectedOrder `json:"selection"`
}

// GenerateOrderNumber assigns one freshly generated number to the whole
// selection, rejecting outright when part of it is already numbered.
func (c *BatchController) GenerateOrderNumber(ctx *fiber.Ctx) error {
	var input selectionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	service := services.NewBatchService(c.DB)
	orderNo, result, err := service.AssignOrderNumber(input.Selection, time.Now(), int(ctx.Locals("userID").(float64)))
	if err != nil {
		if errors.Is(err, services.ErrEmptySelection) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nenhuma ordem selecionada"})
		}
		var numbered *services.AlreadyNumberedError
		if errors.As(err, &numbered) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Ordens ja possuem numero de OC",
				"data":  fiber.Map{"ids": numbered.IDs},
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": result.Message,
		"data":    fiber.Map{"order_no": orderNo, "result": result},
	})
}

// ClearOrderNumbers is the administrative action that releases assigned
// numbers from a selection.
func (c *BatchController) ClearOrderNumbers(ctx *fiber.Ctx) error {
	var input selectionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	service := services.NewBatchService(c.DB)
	result, err := service.ClearOrderNumbers(input.Selection, int(ctx.Locals("userID").(float64)))
	if err != nil {
		if errors.Is(err, services.ErrEmptySelection) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nenhuma ordem selecionada"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": result.Message, "data": result})
}
