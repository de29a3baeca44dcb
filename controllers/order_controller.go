package controllers

import (
	"compras-app/models"
	"compras-app/repositories"
	"compras-app/services"
	"errors"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderController struct {
	DB       *gorm.DB
	Grouping *services.GroupingService
}

func NewOrderController(db *gorm.DB, grouping *services.GroupingService) *OrderController {
	return &OrderController{DB: db, Grouping: grouping}
}

type orderInput struct {
	RequisitionNo    string   `json:"requisition_no" validate:"required"`
	Requester        string   `json:"requester" validate:"required"`
	Department       string   `json:"department"`
	SupplierId       int64    `json:"supplier_id" validate:"required"`
	ProductId        int64    `json:"product_id" validate:"required"`
	Uom              string   `json:"uom"`
	Quantity         *float64 `json:"quantity" validate:"required"`
	ConversionFactor *float64 `json:"conversion_factor"`
	UnitPrice        *float64 `json:"unit_price"`
	IpiPct           *float64 `json:"ipi_pct"`
	IcmsPct          *float64 `json:"icms_pct"`
	FreightCost      *float64 `json:"freight_cost"`
	RequiredDate     string   `json:"required_date"`
	IssueDate        string   `json:"issue_date"`
	DeliveryDate     string   `json:"delivery_date"`
	Status           string   `json:"status"`
	Note             string   `json:"note"`
	CategoryId       int64    `json:"category_id"`
}

// filterFromQuery maps the listing query parameters onto the named
// predicates. An absent parameter leaves its predicate off; statuses come as
// a comma separated list and an empty list means every status.
func filterFromQuery(ctx *fiber.Ctx) repositories.OrderFilter {
	filter := repositories.OrderFilter{
		RequisitionNo: ctx.Query("requisition_no"),
		Requester:     ctx.Query("requester"),
		Department:    ctx.Query("department"),
		ProductName:   ctx.Query("product_name"),
		ProductCode:   ctx.Query("product_code"),
		SupplierId:    ctx.Query("supplier_id"),
		DateFrom:      ctx.Query("date_from"),
		DateTo:        ctx.Query("date_to"),
	}

	if statuses := ctx.Query("statuses"); statuses != "" {
		for _, status := range strings.Split(statuses, ",") {
			status = strings.TrimSpace(status)
			if status != "" {
				filter.Statuses = append(filter.Statuses, status)
			}
		}
	}
	return filter
}

func (c *OrderController) CreateOrder(ctx *fiber.Ctx) error {
	var input orderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	status := input.Status
	if status == "" {
		status = models.StatusRequestSupplier
	}

	order := models.PurchaseOrder{
		RequisitionNo:    input.RequisitionNo,
		Requester:        input.Requester,
		Department:       input.Department,
		SupplierId:       input.SupplierId,
		ProductId:        input.ProductId,
		Uom:              input.Uom,
		Quantity:         input.Quantity,
		ConversionFactor: input.ConversionFactor,
		UnitPrice:        input.UnitPrice,
		IpiPct:           input.IpiPct,
		IcmsPct:          input.IcmsPct,
		FreightCost:      input.FreightCost,
		RequiredDate:     input.RequiredDate,
		IssueDate:        input.IssueDate,
		DeliveryDate:     input.DeliveryDate,
		Status:           status,
		Note:             input.Note,
		CategoryId:       input.CategoryId,
		CreatedBy:        int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&order).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Order created successfully", "data": order})
}

// GetOrders returns the flat filtered listing rows.
func (c *OrderController) GetOrders(ctx *fiber.Ctx) error {
	repo := repositories.NewOrderRepository(c.DB)
	rows, err := repo.Search(filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Orders found", "data": rows})
}

// GetGroupedOrders returns the status -> supplier -> order-group hierarchy
// with the session's pagination cursors applied.
func (c *OrderController) GetGroupedOrders(ctx *fiber.Ctx) error {
	filter := filterFromQuery(ctx)

	repo := repositories.NewOrderRepository(c.DB)
	rows, err := repo.Search(filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	session, _ := ctx.Locals("sessionID").(string)
	listing := c.Grouping.BuildListing(session, rows, filter.Statuses)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Orders found", "data": listing})
}

// MovePage shifts one pagination cursor. Unknown directions and malformed
// keys are ignored on purpose, the next render simply repeats itself.
func (c *OrderController) MovePage(ctx *fiber.Ctx) error {
	var input struct {
		Key       string `json:"key"`
		Direction string `json:"direction"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, _ := ctx.Locals("sessionID").(string)
	if input.Key != "" {
		switch input.Direction {
		case "next":
			c.Grouping.Cursors.Move(session, input.Key, 1)
		case "prev":
			c.Grouping.Cursors.Move(session, input.Key, -1)
		}
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

// ToggleGroup flips the open state of one collapsible group.
func (c *OrderController) ToggleGroup(ctx *fiber.Ctx) error {
	var input struct {
		ToggleKey string `json:"toggle_key"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, _ := ctx.Locals("sessionID").(string)
	if input.ToggleKey != "" {
		c.Grouping.Cursors.Toggle(session, input.ToggleKey)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func (c *OrderController) GetOrderByID(ctx *fiber.Ctx) error {
	var result models.PurchaseOrder
	if err := c.DB.Preload("Shipments").First(&result, "id = ?", ctx.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Order found", "data": result})
}

func (c *OrderController) UpdateOrder(ctx *fiber.Ctx) error {
	var order models.PurchaseOrder
	if err := c.DB.First(&order, "id = ?", ctx.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input orderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"requisition_no":    input.RequisitionNo,
		"requester":         input.Requester,
		"department":        input.Department,
		"supplier_id":       input.SupplierId,
		"product_id":        input.ProductId,
		"uom":               input.Uom,
		"quantity":          input.Quantity,
		"conversion_factor": input.ConversionFactor,
		"unit_price":        input.UnitPrice,
		"ipi_pct":           input.IpiPct,
		"icms_pct":          input.IcmsPct,
		"freight_cost":      input.FreightCost,
		"required_date":     input.RequiredDate,
		"issue_date":        input.IssueDate,
		"delivery_date":     input.DeliveryDate,
		"note":              input.Note,
		"category_id":       input.CategoryId,
		"updated_by":        int(ctx.Locals("userID").(float64)),
	}
	// Status transitions are deliberately unconstrained, the edit form may
	// move an order to any status.
	if input.Status != "" {
		updates["status"] = input.Status
	}

	if err := c.DB.Model(&order).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Order updated successfully"})
}

func (c *OrderController) DeleteOrder(ctx *fiber.Ctx) error {
	var order models.PurchaseOrder
	if err := c.DB.First(&order, "id = ?", ctx.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	order.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", order.ID).Updates(&order).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&order).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Order deleted successfully", "data": order})
}
