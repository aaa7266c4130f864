package mysql

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/pkg/logger"
)

// NewDB 创建数据库连接
// 1. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 2. 开发环境开启SQL日志，生产环境关闭
// 3. auto_migrate开启时自动迁移表结构
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.L().Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("dbname", cfg.Database.DBName),
	)

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// 只会创建表、添加字段，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&CartModel{},
		&CartItemModel{},
		&PurchaseModel{},
		&PurchaseItemModel{},
	)
}

// BookModel GORM图书模型
// 1. 价格使用decimal(10,2),避免浮点误差
// 2. ISBN唯一索引
// 3. quantity_in_stock不允许为负,扣减时用条件UPDATE保证
type BookModel struct {
	ID              uint            `gorm:"primaryKey"`
	Title           string          `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Genre           string          `gorm:"index;size:16;not null;comment:类型"`
	ISBN            string          `gorm:"uniqueIndex;size:32;not null;comment:ISBN号"`
	Author          string          `gorm:"index:idx_search;size:100;not null;comment:作者"`
	PublicationYear int             `gorm:"not null;comment:出版年份"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:价格"`
	QuantityInStock int             `gorm:"not null;default:0;comment:库存数量"`
	CreatedAt       time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time       `gorm:"comment:更新时间"`
}

func (BookModel) TableName() string {
	return "books"
}

// CartModel GORM购物车模型,每个用户一个
type CartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null;comment:用户ID"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel GORM购物车明细模型
// (cart_id, book_id)唯一,同一本书只占一行
type CartItemModel struct {
	ID        uint       `gorm:"primaryKey"`
	CartID    uint       `gorm:"uniqueIndex:uk_cart_book;not null;comment:购物车ID"`
	BookID    uint       `gorm:"uniqueIndex:uk_cart_book;index;not null;comment:图书ID"`
	Book      *BookModel `gorm:"foreignKey:BookID"`
	Quantity  int        `gorm:"not null;comment:数量"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// PurchaseModel GORM购买记录模型
type PurchaseModel struct {
	ID            uint                `gorm:"primaryKey"`
	UserID        uint                `gorm:"index;not null;comment:用户ID"`
	PurchaseDate  time.Time           `gorm:"index;not null;comment:购买时间"`
	PaymentMethod string              `gorm:"size:16;not null;comment:支付方式"`
	Items         []PurchaseItemModel `gorm:"foreignKey:PurchaseID"`
	CreatedAt     time.Time           `gorm:"index"`
	UpdatedAt     time.Time
}

func (PurchaseModel) TableName() string {
	return "purchases"
}

// PurchaseItemModel GORM购买明细模型
// UnitPrice记录结账时的价格快照
type PurchaseItemModel struct {
	ID         uint            `gorm:"primaryKey"`
	PurchaseID uint            `gorm:"index;not null;comment:购买记录ID"`
	BookID     uint            `gorm:"index;not null;comment:图书ID"`
	Book       *BookModel      `gorm:"foreignKey:BookID"`
	Quantity   int             `gorm:"not null;comment:数量"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:结账时单价"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (PurchaseItemModel) TableName() string {
	return "purchase_items"
}
