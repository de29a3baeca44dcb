package controllers

import (
	"compras-app/models"
	"compras-app/repositories"
	"errors"
	"strings"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuotationController struct {
	DB *gorm.DB
}

func NewQuotationController(db *gorm.DB) *QuotationController {
	return &QuotationController{DB: db}
}

type quotationInput struct {
	RequisitionNo string   `json:"requisition_no" validate:"required"`
	SupplierId    int64    `json:"supplier_id" validate:"required"`
	ProductId     int64    `json:"product_id" validate:"required"`
	UnitPrice     *float64 `json:"unit_price"`
	EntryValue    *float64 `json:"entry_value"`
	PaymentTerms  string   `json:"payment_terms"`
	Observation   string   `json:"observation"`
}

func (c *QuotationController) CreateQuotation(ctx *fiber.Ctx) error {
	var input quotationInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	quotation := models.Quotation{
		RequisitionNo: input.RequisitionNo,
		SupplierId:    input.SupplierId,
		ProductId:     input.ProductId,
		UnitPrice:     input.UnitPrice,
		EntryValue:    input.EntryValue,
		PaymentTerms:  input.PaymentTerms,
		Observation:   input.Observation,
		CreatedBy:     int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&quotation).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Quotation created successfully", "data": quotation})
}

// GetQuotationsByRequisition feeds the quotation map preview for one or more
// comma separated requisitions.
func (c *QuotationController) GetQuotationsByRequisition(ctx *fiber.Ctx) error {
	param := ctx.Params("requisition")
	var requisitions []string
	for _, requisition := range strings.Split(param, ",") {
		requisition = strings.TrimSpace(requisition)
		if requisition != "" {
			requisitions = append(requisitions, requisition)
		}
	}

	repo := repositories.NewQuotationRepository(c.DB)
	rows, err := repo.ByRequisitions(requisitions)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Quotations found", "data": rows})
}

func (c *QuotationController) GetQuotationByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Quotation
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quotation not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Quotation found", "data": result})
}

func (c *QuotationController) UpdateQuotation(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var quotation models.Quotation
	if err := c.DB.First(&quotation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quotation not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input quotationInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"requisition_no": input.RequisitionNo,
		"supplier_id":    input.SupplierId,
		"product_id":     input.ProductId,
		"unit_price":     input.UnitPrice,
		"entry_value":    input.EntryValue,
		"payment_terms":  input.PaymentTerms,
		"observation":    input.Observation,
		"updated_by":     int(ctx.Locals("userID").(float64)),
	}
	if err := c.DB.Model(&quotation).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Quotation updated successfully"})
}

func (c *QuotationController) DeleteQuotation(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var quotation models.Quotation
	if err := c.DB.First(&quotation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quotation not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	quotation.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&quotation).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&quotation).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Quotation deleted successfully", "data": quotation})
}
