package purchase

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// PaymentMethod 支付方式(封闭枚举)
type PaymentMethod string

const (
	PaymentWeb      PaymentMethod = "WEB"
	PaymentUSSD     PaymentMethod = "USSD"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// PaymentMethods 全部合法支付方式
var PaymentMethods = []PaymentMethod{PaymentWeb, PaymentUSSD, PaymentTransfer}

// IsValid 是否为合法支付方式
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentWeb, PaymentUSSD, PaymentTransfer:
		return true
	}
	return false
}

// ParsePaymentMethod 解析支付方式(忽略大小写)
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

// Purchase 购买记录
// 结账时生成的快照,创建后不再修改
type Purchase struct {
	shared.Base
	UserID        uint
	PurchaseDate  time.Time
	PaymentMethod PaymentMethod
	Items         []PurchaseItem
}

// PurchaseItem 购买明细(结账时购物车行的副本)
type PurchaseItem struct {
	shared.Base
	PurchaseID uint
	BookID     uint
	Book       *book.Book // 展示用
	Quantity   int
	UnitPrice  decimal.Decimal // 结账时单价
}

// Subtotal 小计
func (i PurchaseItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewPurchase 创建购买记录
// items会被复制,调用方后续修改不影响快照
func NewPurchase(userID uint, method PaymentMethod, purchasedAt time.Time, items []PurchaseItem) *Purchase {
	snapshot := make([]PurchaseItem, len(items))
	copy(snapshot, items)
	for i := range snapshot {
		snapshot[i].Base = shared.NewBase(purchasedAt)
	}

	return &Purchase{
		Base:          shared.NewBase(purchasedAt),
		UserID:        userID,
		PurchaseDate:  purchasedAt,
		PaymentMethod: method,
		Items:         snapshot,
	}
}

// Total 总金额
func (p *Purchase) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalQuantity 总件数
func (p *Purchase) TotalQuantity() int {
	n := 0
	for _, item := range p.Items {
		n += item.Quantity
	}
	return n
}
