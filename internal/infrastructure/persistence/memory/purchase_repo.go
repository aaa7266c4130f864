package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/internal/domain/shared"
)

type purchaseRepository struct {
	s *Store
}

// NewPurchaseRepository 创建购买记录仓储
func NewPurchaseRepository(s *Store) purchase.Repository {
	return &purchaseRepository{s: s}
}

func (r *purchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	defer r.s.lock(ctx)()

	r.s.nextPurchaseID++
	p.ID = r.s.nextPurchaseID
	for i := range p.Items {
		r.s.nextPurchaseItemID++
		p.Items[i].ID = r.s.nextPurchaseItemID
		p.Items[i].PurchaseID = p.ID
	}

	r.s.purchases = append(r.s.purchases, clonePurchase(p))
	return nil
}

var purchaseSorters = map[string]func(a, b *purchase.Purchase) int{
	"id":            func(a, b *purchase.Purchase) int { return cmpUint(a.ID, b.ID) },
	"purchaseDate":  func(a, b *purchase.Purchase) int { return a.PurchaseDate.Compare(b.PurchaseDate) },
	"paymentMethod": func(a, b *purchase.Purchase) int { return strings.Compare(string(a.PaymentMethod), string(b.PaymentMethod)) },
	"createdAt":     func(a, b *purchase.Purchase) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

func (r *purchaseRepository) ListByUserID(ctx context.Context, userID uint, q shared.PageQuery) ([]*purchase.Purchase, int64, error) {
	defer r.s.lock(ctx)()

	q = q.Normalize()
	matched := make([]*purchase.Purchase, 0)
	for _, p := range r.s.purchases {
		if p.UserID == userID {
			matched = append(matched, p)
		}
	}

	cmp, ok := purchaseSorters[q.SortBy]
	if !ok {
		cmp = purchaseSorters["createdAt"]
	}
	sort.SliceStable(matched, func(i, j int) bool {
		c := cmp(matched[i], matched[j])
		if c == 0 {
			c = cmpUint(matched[i].ID, matched[j].ID)
		}
		if q.Ascending {
			return c < 0
		}
		return c > 0
	})

	total := int64(len(matched))
	out := make([]*purchase.Purchase, 0, q.Size)
	for _, p := range paginate(matched, q.Offset(), q.Size) {
		c := clonePurchase(p)
		for i := range c.Items {
			c.Items[i].Book = cloneBook(r.s.books[c.Items[i].BookID])
		}
		out = append(out, c)
	}
	return out, total, nil
}

func clonePurchase(p *purchase.Purchase) *purchase.Purchase {
	out := *p
	out.Items = make([]purchase.PurchaseItem, len(p.Items))
	copy(out.Items, p.Items)
	for i := range out.Items {
		out.Items[i].Book = nil
	}
	return &out
}
