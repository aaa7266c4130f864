// Package router 组装gin引擎:中间件、业务路由、/ping、/metrics、/swagger
package router

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/bookshop/docs"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/purchase"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
	"github.com/xiebiao/bookshop/pkg/validator"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	Book     *handler.BookHandler
	Cart     *handler.CartHandler
	Purchase *handler.PurchaseHandler
}

// Options 可选组件
type Options struct {
	// RateLimiter 为nil时不限流
	RateLimiter *middleware.RateLimiter
	// DisableSwagger 生产环境关闭文档
	DisableSwagger bool
}

var (
	validationOnce sync.Once
	validationErr  error
)

// SetupValidation 注册自定义校验规则(只执行一次)
func SetupValidation() error {
	validationOnce.Do(func() {
		if validationErr = validator.Setup(); validationErr != nil {
			return
		}

		genres := make([]string, len(book.Genres))
		for i, g := range book.Genres {
			genres[i] = string(g)
		}
		validationErr = validator.RegisterEnum("genre", genres,
			"Invalid genre. Allowed genres are FICTION, THRILLER, MYSTERY, POETRY, HORROR and SATIRE only.")
		if validationErr != nil {
			return
		}

		methods := make([]string, len(purchase.PaymentMethods))
		for i, m := range purchase.PaymentMethods {
			methods[i] = string(m)
		}
		validationErr = validator.RegisterEnum("payment_method", methods,
			"Invalid payment method. Allowed payment method are WEB, USSD and TRANSFER only.")
	})
	return validationErr
}

// New 创建gin引擎并注册路由
func New(h Handlers, opts Options) (*gin.Engine, error) {
	if err := SetupValidation(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Tracing(),
		middleware.RequestLogger(),
		middleware.Metrics(),
	)
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Handler())
	}

	r.GET("/ping", func(c *gin.Context) {
		response.SuccessWithMessage(c, http.StatusOK, "pong", gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if !opts.DisableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		inventories := api.Group("/inventories")
		{
			inventories.GET("/search", h.Book.SearchBooks)
			inventories.POST("/add", h.Book.AddBook)
			inventories.GET("/:id", h.Book.GetBook)
			inventories.PUT("/:id", h.Book.UpdateBook)
		}

		cart := api.Group("/cart")
		{
			cart.POST("/add", h.Cart.AddToCart)
			cart.GET("/:userId", h.Cart.ViewCart)
			cart.DELETE("/:userId", h.Cart.ClearCart)
		}

		purchases := api.Group("/purchases")
		{
			purchases.POST("/checkout", h.Purchase.Checkout)
			purchases.GET("/:userId", h.Purchase.ListPurchases)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound)
	})

	return r, nil
}
