package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

type bookRepository struct {
	s *Store
}

// NewBookRepository 创建图书仓储
func NewBookRepository(s *Store) book.Repository {
	return &bookRepository{s: s}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	defer r.s.lock(ctx)()

	if r.isbnTaken(b.ISBN, 0) {
		return book.ErrISBNDuplicate
	}

	now := time.Now()
	r.s.nextBookID++
	b.ID = r.s.nextBookID
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	r.s.books[b.ID] = cloneBook(b)
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	defer r.s.lock(ctx)()

	b, ok := r.s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return cloneBook(b), nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	defer r.s.lock(ctx)()

	existing, ok := r.s.books[b.ID]
	if !ok {
		return book.ErrBookNotFound
	}
	if r.isbnTaken(b.ISBN, b.ID) {
		return book.ErrISBNDuplicate
	}

	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = time.Now()
	r.s.books[b.ID] = cloneBook(b)
	return nil
}

// bookSorters 可排序字段,未知字段按createdAt
var bookSorters = map[string]func(a, b *book.Book) int{
	"id":              func(a, b *book.Book) int { return cmpUint(a.ID, b.ID) },
	"title":           func(a, b *book.Book) int { return strings.Compare(a.Title, b.Title) },
	"author":          func(a, b *book.Book) int { return strings.Compare(a.Author, b.Author) },
	"genre":           func(a, b *book.Book) int { return strings.Compare(string(a.Genre), string(b.Genre)) },
	"isbn":            func(a, b *book.Book) int { return strings.Compare(a.ISBN, b.ISBN) },
	"price":           func(a, b *book.Book) int { return a.Price.Cmp(b.Price) },
	"publicationYear": func(a, b *book.Book) int { return a.PublicationYear - b.PublicationYear },
	"quantityInStock": func(a, b *book.Book) int { return a.QuantityInStock - b.QuantityInStock },
	"createdAt":       func(a, b *book.Book) int { return a.CreatedAt.Compare(b.CreatedAt) },
	"updatedAt":       func(a, b *book.Book) int { return a.UpdatedAt.Compare(b.UpdatedAt) },
}

func (r *bookRepository) Search(ctx context.Context, params book.SearchParams) ([]*book.Book, int64, error) {
	defer r.s.lock(ctx)()

	page := params.PageQuery.Normalize()
	term := strings.ToLower(strings.TrimSpace(params.Term))

	matched := make([]*book.Book, 0, len(r.s.books))
	for _, b := range r.s.books {
		if term == "" || matchesTerm(b, term) {
			matched = append(matched, b)
		}
	}

	cmp, ok := bookSorters[page.SortBy]
	if !ok {
		cmp = bookSorters["createdAt"]
	}
	sort.Slice(matched, func(i, j int) bool {
		c := cmp(matched[i], matched[j])
		if c == 0 {
			c = cmpUint(matched[i].ID, matched[j].ID)
		}
		if page.Ascending {
			return c < 0
		}
		return c > 0
	})

	total := int64(len(matched))
	out := make([]*book.Book, 0, page.Size)
	for _, b := range paginate(matched, page.Offset(), page.Size) {
		out = append(out, cloneBook(b))
	}
	return out, total, nil
}

func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *bookRepository) DecrementStock(ctx context.Context, id uint, amount int) (*book.Book, error) {
	defer r.s.lock(ctx)()

	if amount <= 0 {
		return nil, book.ErrInvalidQuantity
	}
	b, ok := r.s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	if err := b.DecrStock(amount); err != nil {
		return nil, err
	}
	return cloneBook(b), nil
}

func (r *bookRepository) isbnTaken(isbn string, except uint) bool {
	for id, b := range r.s.books {
		if id != except && b.ISBN == isbn {
			return true
		}
	}
	return false
}

// matchesTerm 书名、作者、类型、出版年份任一包含关键词
func matchesTerm(b *book.Book, term string) bool {
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term) ||
		strings.Contains(strings.ToLower(string(b.Genre)), term) ||
		strings.Contains(strconv.Itoa(b.PublicationYear), term)
}

func cmpUint(a, b uint) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func paginate[T any](items []T, offset, size int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
