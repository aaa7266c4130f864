//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	apppurchase "github.com/xiebiao/bookshop/internal/application/purchase"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/router"
)

// infrastructureSet 存储、缓存、事件、支付
var infrastructureSet = wire.NewSet(
	provideStorage,
	wire.FieldsOf(new(*storage), "Tx", "Books", "Carts", "Purchases"),
	provideBookCache,
	provideEventPublisher,
	providePaymentProcessor,
)

var domainSet = wire.NewSet(
	book.NewService,
	cart.NewService,
)

var applicationSet = wire.NewSet(
	appbook.NewAddBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewSearchBooksUseCase,
	appcart.NewAddToCartUseCase,
	appcart.NewViewCartUseCase,
	appcart.NewClearCartUseCase,
	apppurchase.NewCheckoutUseCase,
	apppurchase.NewListPurchasesUseCase,
)

var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewPurchaseHandler,
	wire.Struct(new(router.Handlers), "*"),
	provideRouterOptions,
	router.New,
)

// InitializeApp 组装gin引擎,cleanup释放数据库、Redis与消息连接
func InitializeApp(ctx context.Context, cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
