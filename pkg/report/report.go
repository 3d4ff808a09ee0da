package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// 订单报表：每个行项目一行，末尾追加合计行，以CSV附件发给运营

// Line 报表行项目
type Line struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice float64
}

// Total 行小计
func (l Line) Total() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// OrderReport 单笔订单的报表数据
type OrderReport struct {
	OrderID       uint
	OrderDate     time.Time
	CustomerID    uint
	CustomerName  string
	CustomerEmail string
	Lines         []Line
}

// TotalAmount 订单合计
func (r *OrderReport) TotalAmount() float64 {
	var total float64
	for _, line := range r.Lines {
		total += line.Total()
	}
	return total
}

// Filename 附件文件名
func (r *OrderReport) Filename() string {
	return fmt.Sprintf("order_%d_%s.csv", r.OrderID, r.OrderDate.Format("20060102"))
}

// CSV 生成报表内容
func (r *OrderReport) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"Order Date", "Customer ID", "Customer Name", "Customer Email",
		"SKU", "Product Name", "Quantity", "Unit Price", "Line Total",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	orderDate := r.OrderDate.Format("2006-01-02")
	customerID := strconv.FormatUint(uint64(r.CustomerID), 10)

	for _, line := range r.Lines {
		record := []string{
			orderDate,
			customerID,
			r.CustomerName,
			r.CustomerEmail,
			line.SKU,
			line.Name,
			strconv.Itoa(line.Quantity),
			money(line.UnitPrice),
			money(line.Total()),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	// 合计行
	totalRow := []string{orderDate, customerID, r.CustomerName, r.CustomerEmail,
		"", "TOTAL", "", "", money(r.TotalAmount())}
	if err := w.Write(totalRow); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
