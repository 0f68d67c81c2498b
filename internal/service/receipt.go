package service

import (
    "bytes"
    "fmt"
    "html/template"
    "strings"
    "time"

    wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
)

// PDFRenderer 把回执 HTML 转成可打印附件；失败时邮件降级为无附件发送
type PDFRenderer interface {
    Render(html string) ([]byte, error)
}

// receiptTemplate 订单确认回执，随确认邮件发送
var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <title>Order Confirmation - ARISTAYA</title>
    <style>
      body { font-family: Arial, sans-serif; font-size: 14px; color: #333; }
      .container { max-width: 700px; margin: 20px auto; padding: 30px; border: 1px solid #ddd; }
      h1 { text-align: center; border-bottom: 2px solid #FFD700; padding-bottom: 10px; }
      table { width: 100%; border-collapse: collapse; margin: 20px 0; }
      th, td { text-align: left; padding: 12px; border-bottom: 1px solid #eee; }
      th { background-color: #f2f2f2; }
      .total-row td { background-color: #f0f0f0; font-weight: bold; }
      .thanks { text-align: center; margin-top: 30px; color: #555; }
    </style>
  </head>
  <body>
    <div class="container">
      <h1>ARISTAYA Order Confirmation</h1>
      <p><strong>Order ID:</strong> {{.Order.GatewayOrderID}}</p>
      <p><strong>Payment ID:</strong> {{.Order.GatewayPaymentID}}</p>
      <p><strong>Date:</strong> {{.Date}}</p>
      <p>Dear <strong>{{.Order.BuyerSnapshot.FirstName}} {{.Order.BuyerSnapshot.LastName}}</strong>,</p>
      <p>Thank you for your recent purchase. We have received your payment and processed your order.</p>
      <table>
        <thead>
          <tr><th>Product</th><th>Quantity</th><th>Price</th></tr>
        </thead>
        <tbody>
          {{range .Items}}
          <tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>&#8377;{{printf "%.2f" .UnitPrice}}</td></tr>
          {{end}}
          <tr><td>Shipping Charge</td><td></td><td>&#8377;{{printf "%.2f" .Shipping}}</td></tr>
          <tr class="total-row"><td>Total</td><td></td><td>&#8377;{{printf "%.2f" .Order.TotalAmount}}</td></tr>
        </tbody>
      </table>
      <h2>Shipping Address</h2>
      <p>{{.Order.BuyerSnapshot.FirstName}} {{.Order.BuyerSnapshot.LastName}}</p>
      <p>{{.Order.BuyerSnapshot.Address}}</p>
      <p>{{.Order.BuyerSnapshot.City}}-{{.Order.BuyerSnapshot.ZipCode}}</p>
      <p>{{.Order.BuyerSnapshot.State}}</p>
      <p>Phone: {{.Order.BuyerSnapshot.PhoneNumber}}</p>
      <p>Email: {{.Order.BuyerSnapshot.Email}}</p>
      <p class="thanks">Thank you for choosing ARISTAYA.</p>
    </div>
  </body>
</html>`))

type receiptItem struct {
    Name      string
    Quantity  int
    UnitPrice float64
}

type receiptData struct {
    Order    *model.Order
    Items    []receiptItem
    Shipping float64
    Date     string
}

// RenderReceipt 由台账快照渲染回执 HTML；productNames 缺失的商品
// 退化为展示商品 ID，不阻塞发信。
func RenderReceipt(order *model.Order, productNames map[string]string, shipping float64) (string, error) {
    items := make([]receiptItem, 0, len(order.LineItems))
    for _, li := range order.LineItems {
        name := productNames[li.ProductID]
        if name == "" {
            name = li.ProductID
        }
        items = append(items, receiptItem{Name: name, Quantity: li.Quantity, UnitPrice: li.UnitPrice})
    }
    data := receiptData{
        Order:    order,
        Items:    items,
        Shipping: shipping,
        Date:     time.Now().Format("2 January 2006"),
    }
    var buf bytes.Buffer
    if err := receiptTemplate.Execute(&buf, data); err != nil {
        return "", fmt.Errorf("render receipt: %w", err)
    }
    return buf.String(), nil
}

type wkhtmlRenderer struct{}

// NewPDFRenderer 基于 wkhtmltopdf 的回执转换器
func NewPDFRenderer() PDFRenderer { return wkhtmlRenderer{} }

func (wkhtmlRenderer) Render(html string) ([]byte, error) {
    pdfg, err := wkhtmltopdf.NewPDFGenerator()
    if err != nil {
        return nil, fmt.Errorf("init pdf generator: %w", err)
    }
    pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
    pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
    pdfg.AddPage(wkhtmltopdf.NewPageReader(strings.NewReader(html)))
    if err := pdfg.Create(); err != nil {
        return nil, fmt.Errorf("render pdf: %w", err)
    }
    return pdfg.Bytes(), nil
}
