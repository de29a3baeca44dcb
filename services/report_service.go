package services

import (
	"bytes"
	"compras-app/config"
	"compras-app/models"
	"compras-app/repositories"
	"compras-app/utils"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var ErrNoReportRows = errors.New("no rows found for report")

// Standard purchasing terms printed at the bottom of every purchase order.
const standardTerms = "Mencionar o numero da Ordem de Compra na Nota Fiscal. " +
	"Entregas somente em dias uteis, das 8h as 16h. " +
	"Mercadoria sujeita a conferencia no recebimento."

type ReportService struct {
	db        *gorm.DB
	orders    *repositories.OrderRepository
	shipments *repositories.ShipmentRepository
	quotes    *repositories.QuotationRepository
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		db:        db,
		orders:    repositories.NewOrderRepository(db),
		shipments: repositories.NewShipmentRepository(db),
		quotes:    repositories.NewQuotationRepository(db),
	}
}

// QuotationMapFilename and friends build the download names. Spaces in the
// identifiers become underscores.
func QuotationMapFilename(orderNo string) string {
	return "Mapa_Cotacoes_OC_" + utils.SanitizeFilename(orderNo) + ".pdf"
}

func RFQFilename(requisitionNo string) string {
	return "Cotacao_" + utils.SanitizeFilename(requisitionNo) + ".pdf"
}

func PurchaseOrderFilename(orderNo string) string {
	return "Ordem_Compra_OC_" + utils.SanitizeFilename(orderNo) + ".pdf"
}

const SpreadsheetFilename = "Relatorio_Compras.xlsx"

// QuotationMapPDF renders the quotation comparison sheet: one row per product,
// one column per supplier that quoted, landscape.
func (s *ReportService) QuotationMapPDF(orderNo string) ([]byte, error) {
	rows, err := s.orders.Search(repositories.OrderFilter{OrderNo: orderNo})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoReportRows
	}

	var requisitions []string
	seen := map[string]bool{}
	for _, row := range rows {
		if row.RequisitionNo != "" && !seen[row.RequisitionNo] {
			seen[row.RequisitionNo] = true
			requisitions = append(requisitions, row.RequisitionNo)
		}
	}

	quotes, err := s.quotes.ByRequisitions(requisitions)
	if err != nil {
		return nil, err
	}

	// Pivot: products down, quoting suppliers across, first-seen order.
	var products []string
	var suppliers []string
	cells := map[string]map[string]repositories.QuotationRow{}
	for _, q := range quotes {
		if _, ok := cells[q.ProductName]; !ok {
			cells[q.ProductName] = map[string]repositories.QuotationRow{}
			products = append(products, q.ProductName)
		}
		if _, ok := cells[q.ProductName][q.SupplierName]; !ok {
			cells[q.ProductName][q.SupplierName] = q
		}
		found := false
		for _, name := range suppliers {
			if name == q.SupplierName {
				found = true
				break
			}
		}
		if !found {
			suppliers = append(suppliers, q.SupplierName)
		}
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr("Mapa de Cotacoes - OC "+orderNo), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, tr(config.CompanyName+" - "+config.CompanyDocument), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right
	productCol := 70.0
	supplierCol := usable - productCol
	if len(suppliers) > 0 {
		supplierCol = (usable - productCol) / float64(len(suppliers))
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(productCol, 7, tr("Produto"), "1", 0, "L", true, 0, "")
	for _, supplier := range suppliers {
		pdf.CellFormat(supplierCol, 7, tr(supplier), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, product := range products {
		pdf.CellFormat(productCol, 12, tr(product), "1", 0, "L", false, 0, "")
		for _, supplier := range suppliers {
			text := "-"
			if q, ok := cells[product][supplier]; ok {
				text = quotationCellText(q)
			}
			pdf.CellFormat(supplierCol, 12, tr(text), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func quotationCellText(q repositories.QuotationRow) string {
	price := "-"
	if q.UnitPrice != nil {
		price = utils.FormatDecimalBR(*q.UnitPrice, 2)
	}
	entry := "-"
	if q.EntryValue != nil {
		entry = utils.FormatDecimalBR(*q.EntryValue, 2)
	}
	return fmt.Sprintf("R$ %s / %s / %s / %s", price, entry, q.PaymentTerms, q.Observation)
}

// RFQPDF renders the request-for-quotation sheet for one requisition: letter
// size, company identity header, delivery address and the itemized table.
func (s *ReportService) RFQPDF(requisitionNo string) ([]byte, error) {
	rows, err := s.orders.Search(repositories.OrderFilter{RequisitionNo: requisitionNo})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoReportRows
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr(config.CompanyName), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, tr("CNPJ: "+config.CompanyDocument), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(config.CompanyAddress), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 7, tr("Solicitacao de Cotacao - Requisicao "+requisitionNo), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, tr("Entrega: "+config.DeliveryAddress), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{12, 30, 70, 18, 25, 30}
	headers := []string{"Item", "Codigo", "Descricao", "Unid", "Quantidade", "Necessidade"}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, row := range rows {
		qty := "-"
		if row.Quantity != nil {
			qty = utils.FormatDecimalBR(*row.Quantity, 2)
		}
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(row.ProductCode), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(row.ProductName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, tr(row.Uom), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, qty, "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, tr(row.RequiredDate), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, 5, tr("Observacoes:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		if row.Note != "" {
			pdf.MultiCell(0, 5, tr("- "+row.Note), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PurchaseOrderPDF renders the order sheet sent to the supplier: landscape
// A4, itemized rows with tax-inclusive totals and a grand total. Rows whose
// status drifted from the rest of the order are highlighted.
func (s *ReportService) PurchaseOrderPDF(orderNo string) ([]byte, error) {
	rows, err := s.orders.Search(repositories.OrderFilter{OrderNo: orderNo})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoReportRows
	}

	// The group's expected status is the one most rows carry; ties resolve
	// to the earlier status in listing order because rows arrive sorted.
	statusCount := map[string]int{}
	expectedStatus := rows[0].Status
	for _, row := range rows {
		statusCount[row.Status]++
		if statusCount[row.Status] > statusCount[expectedStatus] {
			expectedStatus = row.Status
		}
	}

	var supplier models.Supplier
	s.db.First(&supplier, rows[0].SupplierId)

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr("Ordem de Compra OC "+orderNo), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, tr(config.CompanyName+" - CNPJ "+config.CompanyDocument), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, tr("Fornecedor: "+rows[0].SupplierName), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, tr("Condicao de pagamento: "+supplier.PaymentTerms), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	widths := []float64{30, 80, 18, 25, 28, 18, 30, 35}
	headers := []string{"Codigo", "Descricao", "Unid", "Quantidade", "Preco Unit.", "IPI %", "Total c/ Imposto", "Status"}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	grandTotal := 0.0
	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		highlight := row.Status != expectedStatus
		if highlight {
			pdf.SetFillColor(255, 235, 156)
		}

		qty, price, ipi := 0.0, 0.0, 0.0
		if row.Quantity != nil {
			qty = *row.Quantity
		}
		if row.UnitPrice != nil {
			price = *row.UnitPrice
		}
		if row.IpiPct != nil {
			ipi = *row.IpiPct
		}
		lineTotal := qty * price * (1 + ipi/100)
		grandTotal += lineTotal

		pdf.CellFormat(widths[0], 6, tr(row.ProductCode), "1", 0, "L", highlight, 0, "")
		pdf.CellFormat(widths[1], 6, tr(row.ProductName), "1", 0, "L", highlight, 0, "")
		pdf.CellFormat(widths[2], 6, tr(row.Uom), "1", 0, "C", highlight, 0, "")
		pdf.CellFormat(widths[3], 6, utils.FormatDecimalBR(qty, 2), "1", 0, "R", highlight, 0, "")
		pdf.CellFormat(widths[4], 6, utils.FormatDecimalBR(price, 2), "1", 0, "R", highlight, 0, "")
		pdf.CellFormat(widths[5], 6, utils.FormatDecimalBR(ipi, 1), "1", 0, "R", highlight, 0, "")
		pdf.CellFormat(widths[6], 6, "R$ "+utils.FormatDecimalBR(lineTotal, 2), "1", 0, "R", highlight, 0, "")
		pdf.CellFormat(widths[7], 6, tr(row.Status), "1", 0, "C", highlight, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 7, tr("Total Geral: R$ "+utils.FormatDecimalBR(grandTotal, 2)), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, 5, tr("Endereco de entrega:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, tr(config.DeliveryAddress), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.MultiCell(0, 5, tr(standardTerms), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// OrdersSpreadsheet exports the filtered listing to a single sheet with one
// row per order plus paired "Recebimento N Qtd"/"Recebimento N Data" columns
// up to the largest shipment count among the exported orders.
func (s *ReportService) OrdersSpreadsheet(filter repositories.OrderFilter) ([]byte, error) {
	rows, err := s.orders.Search(filter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	shipmentsByOrder, err := s.shipments.ByPurchaseOrders(ids)
	if err != nil {
		return nil, err
	}

	maxShipments := 0
	for _, shipments := range shipmentsByOrder {
		if len(shipments) > maxShipments {
			maxShipments = len(shipments)
		}
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{
		"ID", "Requisicao", "Solicitante", "Departamento", "Fornecedor",
		"Produto", "Codigo", "Unid", "Quantidade", "Qtd Recebida",
		"Fator Conversao", "Preco Unit", "IPI %", "ICMS %", "Frete",
		"Data Necessidade", "Data Emissao", "Data Entrega",
		"Status", "Observacao", "Ordem de Compra",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for n := 1; n <= maxShipments; n++ {
		qtyCell, _ := excelize.CoordinatesToCellName(len(headers)+(n-1)*2+1, 1)
		dateCell, _ := excelize.CoordinatesToCellName(len(headers)+(n-1)*2+2, 1)
		f.SetCellValue(sheet, qtyCell, fmt.Sprintf("Recebimento %d Qtd", n))
		f.SetCellValue(sheet, dateCell, fmt.Sprintf("Recebimento %d Data", n))
	}

	for i, row := range rows {
		values := []interface{}{
			row.ID, row.RequisitionNo, row.Requester, row.Department, row.SupplierName,
			row.ProductName, row.ProductCode, row.Uom, floatOrBlank(row.Quantity), floatOrBlank(row.ReceivedQty),
			floatOrBlank(row.ConversionFactor), floatOrBlank(row.UnitPrice), floatOrBlank(row.IpiPct), floatOrBlank(row.IcmsPct), floatOrBlank(row.FreightCost),
			row.RequiredDate, row.IssueDate, row.DeliveryDate,
			row.Status, row.Note, row.OrderNo,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}

		// Missing shipments leave their paired cells blank.
		for n, shipment := range shipmentsByOrder[row.ID] {
			qtyCell, _ := excelize.CoordinatesToCellName(len(headers)+n*2+1, i+2)
			dateCell, _ := excelize.CoordinatesToCellName(len(headers)+n*2+2, i+2)
			f.SetCellValue(sheet, qtyCell, shipment.Quantity)
			f.SetCellValue(sheet, dateCell, shipment.ReceiptDate)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func floatOrBlank(value *float64) interface{} {
	if value == nil {
		return ""
	}
	return *value
}
