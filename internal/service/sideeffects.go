package service

import (
    "context"
    "fmt"

    "go.uber.org/zap"

    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/model"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/internal/repository"
    "github.com/priyam-343/ARISTAYA-backend-ecommerce/pkg/logger"
)

// SideEffectPipeline 成功结算后的收尾：渲染回执 → 转 PDF →
// 发邮件 → 清购物车。每一步独立 best-effort，任何失败只记日志，
// 既不回传网关也不回滚订单状态；PDF/邮件失败不阻塞清车。
type SideEffectPipeline struct {
    products repository.ProductRepository
    carts    repository.CartRepository
    mailer   Mailer
    pdf      PDFRenderer
    shipping float64
}

func NewSideEffectPipeline(products repository.ProductRepository, carts repository.CartRepository, mailer Mailer, pdf PDFRenderer, shipping float64) *SideEffectPipeline {
    return &SideEffectPipeline{products: products, carts: carts, mailer: mailer, pdf: pdf, shipping: shipping}
}

// Run 对刚完成的订单执行一次管线。只读订单，绝不回写 status/totalAmount。
func (p *SideEffectPipeline) Run(ctx context.Context, order *model.Order) {
    html := p.renderReceipt(ctx, order)

    if html != "" && p.mailer != nil {
        var attachment []byte
        if p.pdf != nil {
            pdfBytes, err := p.pdf.Render(html)
            if err != nil {
                logger.Warn("receipt pdf generation failed, sending without attachment",
                    zap.String("gateway_order_id", order.GatewayOrderID), zap.Error(err))
            } else {
                attachment = pdfBytes
            }
        }
        subject := fmt.Sprintf("ARISTAYA Order Confirmation - Order ID: %s", order.GatewayOrderID)
        filename := fmt.Sprintf("ARISTAYA_Receipt_%s.pdf", order.GatewayPaymentID)
        if err := p.mailer.Send(order.BuyerSnapshot.Email, subject, html, attachment, filename); err != nil {
            logger.Warn("receipt email failed",
                zap.String("gateway_order_id", order.GatewayOrderID),
                zap.String("to", order.BuyerSnapshot.Email), zap.Error(err))
        }
    }

    if err := p.carts.ClearByBuyer(ctx, order.BuyerID); err != nil {
        logger.Warn("cart clear failed",
            zap.String("buyer_id", order.BuyerID), zap.Error(err))
    }
}

func (p *SideEffectPipeline) renderReceipt(ctx context.Context, order *model.Order) string {
    ids := make([]string, 0, len(order.LineItems))
    for _, li := range order.LineItems {
        ids = append(ids, li.ProductID)
    }
    names := map[string]string{}
    if p.products != nil {
        products, err := p.products.GetByIDs(ctx, ids)
        if err != nil {
            logger.Warn("product lookup for receipt failed, falling back to ids", zap.Error(err))
        } else {
            for id, prod := range products {
                names[id] = prod.Name
            }
        }
    }
    html, err := RenderReceipt(order, names, p.shipping)
    if err != nil {
        logger.Warn("receipt rendering failed",
            zap.String("gateway_order_id", order.GatewayOrderID), zap.Error(err))
        return ""
    }
    return html
}
