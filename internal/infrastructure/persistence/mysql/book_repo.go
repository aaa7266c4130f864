package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// bookSortColumns 可排序字段(请求字段名 → 列名)
var bookSortColumns = map[string]string{
	"id":              "id",
	"title":           "title",
	"author":          "author",
	"genre":           "genre",
	"isbn":            "isbn",
	"price":           "price",
	"publicationYear": "publication_year",
	"quantityInStock": "quantity_in_stock",
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
}

// bookRepository 图书仓储实现(MySQL)
// 负责领域实体与GORM模型之间的转换,并把数据库错误转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 保存图书全部字段
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	result := getDB(ctx, r.db).Model(&BookModel{ID: b.ID}).Select("*").Omit("id", "created_at").Updates(model)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrISBNDuplicate
		}
		return apperrors.WrapCode(result.Error, apperrors.ErrCodeDatabaseError, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Search 分页搜索
// 关键词同时匹配书名、作者、类型、出版年份,忽略大小写
func (r *bookRepository) Search(ctx context.Context, params book.SearchParams) ([]*book.Book, int64, error) {
	page := params.PageQuery.Normalize()
	query := getDB(ctx, r.db).Model(&BookModel{})

	if term := strings.TrimSpace(params.Term); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(genre) LIKE ? OR CAST(publication_year AS CHAR) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询图书总数失败")
	}

	var models []BookModel
	err := query.
		Order(orderClause(bookSortColumns, page.SortBy, page.Ascending)).
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// LockByID 悲观锁查询图书(SELECT ... FOR UPDATE)
// 必须通过getDB(ctx)使用事务DB,否则锁在语句结束时即释放
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// DecrementStock 原子扣减库存
// UPDATE books SET quantity_in_stock = quantity_in_stock - ? WHERE id = ? AND quantity_in_stock >= ?
func (r *bookRepository) DecrementStock(ctx context.Context, id uint, amount int) (*book.Book, error) {
	if amount <= 0 {
		return nil, book.ErrInvalidQuantity
	}

	db := getDB(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("quantity_in_stock >= ?", amount).
		Update("quantity_in_stock", gorm.Expr("quantity_in_stock - ?", amount))
	if result.Error != nil {
		return nil, apperrors.WrapCode(result.Error, apperrors.ErrCodeDatabaseError, "扣减库存失败")
	}

	if result.RowsAffected == 0 {
		// 图书不存在或库存不足,再查一次区分
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, book.ErrInsufficientStock
	}

	return r.FindByID(ctx, id)
}

// =========================================
// 模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:              b.ID,
		Title:           b.Title,
		Genre:           string(b.Genre),
		ISBN:            b.ISBN,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		Price:           b.Price,
		QuantityInStock: b.QuantityInStock,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		Base: shared.Base{
			ID:        model.ID,
			CreatedAt: model.CreatedAt,
			UpdatedAt: model.UpdatedAt,
		},
		Title:           model.Title,
		Genre:           book.Genre(model.Genre),
		ISBN:            model.ISBN,
		Author:          model.Author,
		PublicationYear: model.PublicationYear,
		Price:           model.Price,
		QuantityInStock: model.QuantityInStock,
	}
}
