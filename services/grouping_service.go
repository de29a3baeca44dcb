package services

import (
	"compras-app/models"
	"compras-app/repositories"

	"golang.org/x/exp/slices"
)

const (
	// Page sizes of the two pagination levels of the listing.
	SupplierPageSize = 5
	GroupPageSize    = 3

	// Bucket labels for rows that have no grouping key yet.
	NoRequisitionBucket = "Sem Requisicao"
	NoOrderNoBucket     = "Sem Ordem de Compra"

	// Receipts under this share of the requested quantity get the
	// shortfall marker in the group detail table.
	shortfallRatio = 0.9
)

// GroupingService turns the flat, already-sorted listing rows into the three
// level display hierarchy: status section -> supplier -> order group.
type GroupingService struct {
	Cursors *CursorStore
}

func NewGroupingService(cursors *CursorStore) *GroupingService {
	return &GroupingService{Cursors: cursors}
}

type OrderView struct {
	repositories.OrderRow
	ConversionQty *float64 `json:"conversion_qty"`
	LineTotal     *float64 `json:"line_total"`
	Shortfall     bool     `json:"shortfall"`
}

type OrderGroup struct {
	Key         string      `json:"key"`
	ToggleKey   string      `json:"toggle_key"`
	Collapsible bool        `json:"collapsible"`
	Open        bool        `json:"open"`
	Orders      []OrderView `json:"orders"`
}

type SupplierSection struct {
	SupplierName string       `json:"supplier_name"`
	Groups       []OrderGroup `json:"groups"`
	Page         int          `json:"page"`
	TotalPages   int          `json:"total_pages"`
	HasPrev      bool         `json:"has_prev"`
	HasNext      bool         `json:"has_next"`
}

type StatusSection struct {
	Status     string            `json:"status"`
	Suppliers  []SupplierSection `json:"suppliers"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	HasPrev    bool              `json:"has_prev"`
	HasNext    bool              `json:"has_next"`
}

type Listing struct {
	Sections []StatusSection `json:"sections"`
	Empty    bool            `json:"empty"`
}

// TotalPages is ceil(count/size) with a floor of one page.
func TotalPages(count, size int) int {
	pages := (count + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage keeps a requested page index inside [0, totalPages-1].
func ClampPage(page, totalPages int) int {
	if page < 0 {
		return 0
	}
	if page > totalPages-1 {
		return totalPages - 1
	}
	return page
}

// BuildListing partitions rows by status, pages the distinct suppliers of
// each status, groups each supplier's rows by requisition or order number and
// pages those groups. Supplier order is first-seen order of the incoming rows,
// which the repository already sorted by status then id descending.
func (s *GroupingService) BuildListing(session string, rows []repositories.OrderRow, requestedStatuses []string) Listing {
	byStatus := make(map[string][]repositories.OrderRow)
	for _, row := range rows {
		byStatus[row.Status] = append(byStatus[row.Status], row)
	}

	// A filtered-in status with zero matching rows still renders its empty
	// section; statuses nobody asked for and nobody matched are skipped.
	var statuses []string
	for _, status := range models.StatusListingOrder {
		if _, present := byStatus[status]; present || slices.Contains(requestedStatuses, status) {
			statuses = append(statuses, status)
		}
	}

	if len(rows) == 0 && len(requestedStatuses) == 0 {
		return Listing{Empty: true}
	}

	listing := Listing{}
	for _, status := range statuses {
		listing.Sections = append(listing.Sections, s.buildStatusSection(session, status, byStatus[status]))
	}
	return listing
}

func (s *GroupingService) buildStatusSection(session, status string, rows []repositories.OrderRow) StatusSection {
	var supplierNames []string
	bySupplier := make(map[string][]repositories.OrderRow)
	for _, row := range rows {
		if !slices.Contains(supplierNames, row.SupplierName) {
			supplierNames = append(supplierNames, row.SupplierName)
		}
		bySupplier[row.SupplierName] = append(bySupplier[row.SupplierName], row)
	}

	pageKey := SupplierPageKey(status)
	totalPages := TotalPages(len(supplierNames), SupplierPageSize)
	page := ClampPage(s.Cursors.Page(session, pageKey), totalPages)
	s.Cursors.SetPage(session, pageKey, page)

	section := StatusSection{
		Status:     status,
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    len(supplierNames) > SupplierPageSize && page > 0,
		HasNext:    len(supplierNames) > SupplierPageSize && page < totalPages-1,
	}

	start := page * SupplierPageSize
	end := start + SupplierPageSize
	if start > len(supplierNames) {
		start = len(supplierNames)
	}
	if end > len(supplierNames) {
		end = len(supplierNames)
	}

	for _, supplier := range supplierNames[start:end] {
		section.Suppliers = append(section.Suppliers, s.buildSupplierSection(session, status, supplier, bySupplier[supplier]))
	}
	return section
}

func (s *GroupingService) buildSupplierSection(session, status, supplier string, rows []repositories.OrderRow) SupplierSection {
	var groupKeys []string
	byGroup := make(map[string][]repositories.OrderRow)
	for _, row := range rows {
		key := groupKeyFor(status, row)
		if !slices.Contains(groupKeys, key) {
			groupKeys = append(groupKeys, key)
		}
		byGroup[key] = append(byGroup[key], row)
	}

	pageKey := GroupPageKey(status, supplier)
	totalPages := TotalPages(len(groupKeys), GroupPageSize)
	page := ClampPage(s.Cursors.Page(session, pageKey), totalPages)
	s.Cursors.SetPage(session, pageKey, page)

	section := SupplierSection{
		SupplierName: supplier,
		Page:         page,
		TotalPages:   totalPages,
		HasPrev:      len(groupKeys) > GroupPageSize && page > 0,
		HasNext:      len(groupKeys) > GroupPageSize && page < totalPages-1,
	}

	start := page * GroupPageSize
	end := start + GroupPageSize
	if start > len(groupKeys) {
		start = len(groupKeys)
	}
	if end > len(groupKeys) {
		end = len(groupKeys)
	}

	collapsible := status != models.StatusRequestSupplier
	for _, key := range groupKeys[start:end] {
		group := OrderGroup{
			Key:         key,
			Collapsible: collapsible,
		}
		if collapsible {
			group.ToggleKey = ToggleKey(status, supplier, key)
			group.Open = s.Cursors.IsOpen(session, group.ToggleKey)
		} else {
			group.Open = true
		}
		for _, row := range byGroup[key] {
			group.Orders = append(group.Orders, buildOrderView(row))
		}
		section.Groups = append(section.Groups, group)
	}
	return section
}

// groupKeyFor picks the secondary grouping key: requisition number while the
// order is still with the requester, order number afterwards.
func groupKeyFor(status string, row repositories.OrderRow) string {
	if status == models.StatusRequestSupplier {
		if row.RequisitionNo == "" {
			return NoRequisitionBucket
		}
		return row.RequisitionNo
	}
	if row.OrderNo == "" {
		return NoOrderNoBucket
	}
	return row.OrderNo
}

func buildOrderView(row repositories.OrderRow) OrderView {
	view := OrderView{OrderRow: row}

	if row.Quantity != nil && row.ConversionFactor != nil {
		qty := *row.Quantity * *row.ConversionFactor
		view.ConversionQty = &qty
	}
	if row.Quantity != nil && row.UnitPrice != nil {
		total := *row.Quantity * *row.UnitPrice
		view.LineTotal = &total
	}
	if row.Quantity != nil && row.ReceivedQty != nil {
		view.Shortfall = *row.ReceivedQty < shortfallRatio**row.Quantity
	}
	return view
}
