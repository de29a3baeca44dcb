package controllers

import (
	"compras-app/models"
	"compras-app/repositories"
	"errors"
	"strconv"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ShipmentController struct {
	DB *gorm.DB
}

func NewShipmentController(db *gorm.DB) *ShipmentController {
	return &ShipmentController{DB: db}
}

type shipmentInput struct {
	PurchaseOrderId int64   `json:"purchase_order_id" validate:"required"`
	Quantity        float64 `json:"quantity" validate:"required,gt=0"`
	ReceiptDate     string  `json:"receipt_date" validate:"required"`
}

// CreateShipment records a receipt against an order and refreshes the
// order's received quantity from the shipment total.
func (c *ShipmentController) CreateShipment(ctx *fiber.Ctx) error {
	var input shipmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var order models.PurchaseOrder
	if err := c.DB.First(&order, "id = ?", input.PurchaseOrderId).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
	}

	shipment := models.Shipment{
		PurchaseOrderId: input.PurchaseOrderId,
		Quantity:        input.Quantity,
		ReceiptDate:     input.ReceiptDate,
		CreatedBy:       int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&shipment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.refreshReceivedQty(order.ID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Shipment created successfully", "data": shipment})
}

// GetShipmentsByOrder backs the list tab of the shipment form.
func (c *ShipmentController) GetShipmentsByOrder(ctx *fiber.Ctx) error {
	orderID, err := strconv.ParseInt(ctx.Params("orderId"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	repo := repositories.NewShipmentRepository(c.DB)
	shipments, err := repo.ByPurchaseOrder(orderID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Shipments found", "data": shipments})
}

func (c *ShipmentController) GetShipmentByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Shipment
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shipment not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Shipment found", "data": result})
}

func (c *ShipmentController) UpdateShipment(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var existing models.Shipment
	if err := c.DB.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shipment not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input shipmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"quantity":     input.Quantity,
		"receipt_date": input.ReceiptDate,
		"updated_by":   int(ctx.Locals("userID").(float64)),
	}
	if err := c.DB.Model(&models.Shipment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.refreshReceivedQty(existing.PurchaseOrderId); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Shipment updated successfully"})
}

func (c *ShipmentController) DeleteShipment(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var shipment models.Shipment
	if err := c.DB.First(&shipment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shipment not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	shipment.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&shipment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&shipment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.refreshReceivedQty(shipment.PurchaseOrderId); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Shipment deleted successfully", "data": shipment})
}

func (c *ShipmentController) refreshReceivedQty(orderID int64) error {
	var total float64
	err := c.DB.Model(&models.Shipment{}).
		Where("purchase_order_id = ?", orderID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return err
	}

	return c.DB.Model(&models.PurchaseOrder{}).Where("id = ?", orderID).
		Update("received_qty", total).Error
}
