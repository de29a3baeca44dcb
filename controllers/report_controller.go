package controllers

import (
	"compras-app/models"
	"compras-app/services"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB     *gorm.DB
	Mailer *services.MailerService
}

func NewReportController(db *gorm.DB, mailer *services.MailerService) *ReportController {
	return &ReportController{DB: db, Mailer: mailer}
}

func sendPDF(ctx *fiber.Ctx, pdf []byte, filename string) error {
	ctx.Set("Content-Type", "application/pdf")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Send(pdf)
}

// QuotationMap streams the quotation comparison sheet of one order number.
func (c *ReportController) QuotationMap(ctx *fiber.Ctx) error {
	orderNo := ctx.Params("orderNo")

	service := services.NewReportService(c.DB)
	pdf, err := service.QuotationMapPDF(orderNo)
	if err != nil {
		if errors.Is(err, services.ErrNoReportRows) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return sendPDF(ctx, pdf, services.QuotationMapFilename(orderNo))
}

// RFQ streams the request-for-quotation sheet of one requisition.
func (c *ReportController) RFQ(ctx *fiber.Ctx) error {
	requisitionNo := ctx.Params("requisition")

	service := services.NewReportService(c.DB)
	pdf, err := service.RFQPDF(requisitionNo)
	if err != nil {
		if errors.Is(err, services.ErrNoReportRows) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Requisition not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return sendPDF(ctx, pdf, services.RFQFilename(requisitionNo))
}

// PurchaseOrder streams the order sheet of one order number.
func (c *ReportController) PurchaseOrder(ctx *fiber.Ctx) error {
	orderNo := ctx.Params("orderNo")

	service := services.NewReportService(c.DB)
	pdf, err := service.PurchaseOrderPDF(orderNo)
	if err != nil {
		if errors.Is(err, services.ErrNoReportRows) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return sendPDF(ctx, pdf, services.PurchaseOrderFilename(orderNo))
}

// SendPurchaseOrder generates the order sheet and emails it to the order's
// supplier.
func (c *ReportController) SendPurchaseOrder(ctx *fiber.Ctx) error {
	orderNo := ctx.Params("orderNo")

	service := services.NewReportService(c.DB)
	pdf, err := service.PurchaseOrderPDF(orderNo)
	if err != nil {
		if errors.Is(err, services.ErrNoReportRows) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var order models.PurchaseOrder
	if err := c.DB.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	}

	var supplier models.Supplier
	if err := c.DB.First(&supplier, order.SupplierId).Error; err != nil || supplier.SuppEmail == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Supplier has no email address"})
	}

	if err := c.Mailer.SendPurchaseOrder([]string{supplier.SuppEmail}, orderNo, pdf); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Purchase order sent to " + supplier.SuppEmail})
}

// ExportExcel streams the filtered listing as a spreadsheet, one row per
// order plus the dynamic shipment column pairs.
func (c *ReportController) ExportExcel(ctx *fiber.Ctx) error {
	service := services.NewReportService(c.DB)
	data, err := service.OrdersSpreadsheet(filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, services.SpreadsheetFilename))
	return ctx.Send(data)
}
