package ordermodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// 订单粗粒度状态 (业务侧)
const (
	OrderStatusOrdered = "Ordered"
	OrderStatusPaid    = "Paid"
	OrderStatusFailed  = "Failed"
	OrderStatusCOD     = "COD"
)

// 订单细粒度状态 (网关侧镜像)
const (
	PayStatusPending   = "PENDING"
	PayStatusPaid      = "PAID"
	PayStatusFailed    = "FAILED"
	PayStatusCancelled = "CANCELLED" // 仅出现在跳转地址的状态提示里
)

// 网关支付标识占位值
const (
	PayosPaymentCOD    = "COD"
	PayosPaymentFailed = "FAILED"
)

// ShopOrder 商城订单（仅支付相关字段归本服务维护）
// order_code/payment_id 下单后首次 checkout 时懒生成，唯一索引保证不重复
type ShopOrder struct {
	ID                 uint64              `gorm:"column:id;primaryKey" json:"id"`
	OrderCode          *int64              `gorm:"column:order_code;uniqueIndex" json:"orderCode"`
	PaymentID          *string             `gorm:"column:payment_id;uniqueIndex" json:"paymentId"`
	TotalPrice         decimal.Decimal     `gorm:"column:total_price" json:"totalPrice"`
	PriceAfterDiscount decimal.NullDecimal `gorm:"column:price_after_discount" json:"priceAfterDiscount"`
	OrderStatus        string              `gorm:"column:order_status" json:"orderStatus"`
	Status             string              `gorm:"column:status" json:"status"`
	PayosPaymentID     *string             `gorm:"column:payos_payment_id" json:"payosPaymentId"`
	PaidAt             *time.Time          `gorm:"column:paid_at" json:"paidAt"`
	CreatedAt          time.Time           `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt          time.Time           `gorm:"column:updated_at" json:"updatedAt"`
}

func (ShopOrder) TableName() string { return "shop_order" }

// Terminal 是否已处于终态（终态之间不再迁移）
func (o *ShopOrder) Terminal() bool {
	switch o.OrderStatus {
	case OrderStatusPaid, OrderStatusFailed, OrderStatusCOD:
		return true
	}
	return false
}
