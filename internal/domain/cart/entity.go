package cart

import (
	"time"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/shared"
)

// Cart 购物车(每个用户一个)
// 不变量:同一本书在购物车中最多一行
type Cart struct {
	shared.Base
	UserID uint
	Items  []CartItem // 按加入顺序
}

// CartItem 购物车明细
type CartItem struct {
	shared.Base
	CartID   uint
	BookID   uint
	Book     *book.Book // 展示用,由仓储加载,可能为nil
	Quantity int
}

// NewCart 创建空购物车
func NewCart(userID uint) *Cart {
	return &Cart{
		Base:   shared.NewBase(time.Now()),
		UserID: userID,
	}
}

// AddItem 加入购物车
// 已有该书则累加数量,否则追加新行;不检查库存
func (c *Cart) AddItem(bookID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now()
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items[i].Quantity += quantity
			c.Items[i].Touch(now)
			c.Touch(now)
			return &c.Items[i], nil
		}
	}

	c.Items = append(c.Items, CartItem{
		Base:     shared.NewBase(now),
		CartID:   c.ID,
		BookID:   bookID,
		Quantity: quantity,
	})
	c.Touch(now)
	return &c.Items[len(c.Items)-1], nil
}

// QuantityOf 购物车中某本书的数量
func (c *Cart) QuantityOf(bookID uint) int {
	for _, item := range c.Items {
		if item.BookID == bookID {
			return item.Quantity
		}
	}
	return 0
}

// Clear 清空明细(购物车本身保留)
func (c *Cart) Clear() {
	c.Items = nil
	c.Touch(time.Now())
}

// IsEmpty 是否没有明细
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity 商品总件数
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
