package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// ExportFormat values accepted by the export endpoint
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportResult is a ready-to-serve file
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// OrderExportData is everything an export renders: the resolved window,
// the headline metrics and the matching order rows.
type OrderExportData struct {
	Range   models.DateRange
	Summary models.AggregateMetrics
	Orders  []models.OrderDetailRow
}

// ExportOrders renders the order report in the requested format.
func ExportOrders(format string, data OrderExportData) (*ExportResult, error) {
	switch format {
	case ExportFormatCSV:
		return exportOrdersCSV(data)
	case ExportFormatPDF:
		return exportOrdersPDF(data)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

func exportFileName(r models.DateRange, ext string) string {
	return fmt.Sprintf("orders-%s-to-%s.%s",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), ext)
}

func exportOrdersCSV(data OrderExportData) (*ExportResult, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Order Number", "Customer", "Status", "Payment Method", "Payment Status", "Total Amount", "Order Date"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, o := range data.Orders {
		row := []string{
			o.OrderNumber,
			o.CustomerName,
			o.Status,
			o.PaymentMethod,
			o.PaymentStatus,
			strconv.FormatFloat(o.TotalAmount, 'f', 2, 64),
			o.OrderDate.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return &ExportResult{
		FileName:    exportFileName(data.Range, "csv"),
		ContentType: "text/csv",
		Content:     buf.Bytes(),
	}, nil
}

// exportOrdersPDF renders the report as an A4 document: a summary block
// followed by one row per order.
func exportOrdersPDF(data OrderExportData) (*ExportResult, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	darkGray := color.Color{Red: 38, Green: 38, Blue: 34}
	mediumGray := color.Color{Red: 121, Green: 119, Blue: 109}

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text("ORDER REPORT", props.Text{
				Size:  24,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("VASTRIKA", props.Text{
				Size:  16,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
	})

	m.Row(5, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("%s — %s to %s",
				data.Range.Label,
				data.Range.Start.Format("Jan 02, 2006"),
				data.Range.End.Format("Jan 02, 2006")), props.Text{
				Size:  9,
				Color: mediumGray,
			})
		})
	})

	m.Row(8, func() {})

	// Summary block
	summaryLines := []struct {
		label string
		value string
	}{
		{"Orders", strconv.Itoa(data.Summary.TotalOrders)},
		{"Revenue", fmt.Sprintf("Rs %.2f", data.Summary.TotalRevenue)},
		{"Average Order Value", fmt.Sprintf("Rs %.2f", data.Summary.AverageOrderValue)},
		{"Unique Customers", strconv.Itoa(data.Summary.UniqueCustomers)},
		{"Items Sold", strconv.Itoa(data.Summary.ItemsSold)},
		{"Returned Orders", strconv.Itoa(data.Summary.ReturnedOrders)},
		{"Cancelled Orders", strconv.Itoa(data.Summary.CancelledOrders)},
	}
	for _, line := range summaryLines {
		m.Row(5, func() {
			m.Col(4, func() {
				m.Text(line.label, props.Text{
					Size:  9,
					Color: mediumGray,
				})
			})
			m.Col(4, func() {
				m.Text(line.value, props.Text{
					Size:  9,
					Style: consts.Bold,
					Color: darkGray,
				})
			})
		})
	}

	m.Row(8, func() {})

	// Orders table header
	m.Row(6, func() {
		m.Col(3, func() {
			m.Text("Order", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(3, func() {
			m.Text("Customer", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(2, func() {
			m.Text("Status", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(2, func() {
			m.Text("Date", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
			})
		})
		m.Col(2, func() {
			m.Text("Total", props.Text{
				Size:  8,
				Style: consts.Bold,
				Color: darkGray,
				Align: consts.Right,
			})
		})
	})

	for _, o := range data.Orders {
		m.Row(6, func() {
			m.Col(3, func() {
				m.Text(o.OrderNumber, props.Text{
					Size:  8,
					Color: darkGray,
				})
			})
			m.Col(3, func() {
				m.Text(o.CustomerName, props.Text{
					Size:  8,
					Color: darkGray,
				})
			})
			m.Col(2, func() {
				m.Text(o.Status, props.Text{
					Size:  8,
					Color: darkGray,
				})
			})
			m.Col(2, func() {
				m.Text(o.OrderDate.Format("02 Jan 06"), props.Text{
					Size:  8,
					Color: darkGray,
				})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("Rs %.2f", o.TotalAmount), props.Text{
					Size:  8,
					Color: darkGray,
					Align: consts.Right,
				})
			})
		})
	}

	m.Row(12, func() {})

	m.Row(5, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Generated %s", time.Now().Format("Jan 02, 2006 15:04")), props.Text{
				Size:  8,
				Color: mediumGray,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		log.Printf("[order.export] failed to generate PDF: %v", err)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return &ExportResult{
		FileName:    exportFileName(data.Range, "pdf"),
		ContentType: "application/pdf",
		Content:     buf.Bytes(),
	}, nil
}
