package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// BookHandler 图书(库存)HTTP处理器
type BookHandler struct {
	addBook     *appbook.AddBookUseCase
	updateBook  *appbook.UpdateBookUseCase
	getBook     *appbook.GetBookUseCase
	searchBooks *appbook.SearchBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	addBook *appbook.AddBookUseCase,
	updateBook *appbook.UpdateBookUseCase,
	getBook *appbook.GetBookUseCase,
	searchBooks *appbook.SearchBooksUseCase,
) *BookHandler {
	return &BookHandler{
		addBook:     addBook,
		updateBook:  updateBook,
		getBook:     getBook,
		searchBooks: searchBooks,
	}
}

// AddBook 新增图书
// @Summary      新增图书
// @Description  新增图书并设置初始库存,ISBN唯一
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误或ISBN已存在"
// @Router       /api/inventories/add [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	var req dto.AddBookRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.addBook.Execute(c.Request.Context(), appbook.AddBookRequest{
		Title:           req.Title,
		Genre:           req.Genre,
		ISBN:            req.ISBN,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		Price:           decimal.NewFromFloat(req.Price).Round(2),
		QuantityInStock: req.QuantityInStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Book created successfully.", result)
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Tags         库存
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/inventories/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.updateBook.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:              id,
		Title:           req.Title,
		Genre:           req.Genre,
		ISBN:            req.ISBN,
		Author:          req.Author,
		PublicationYear: req.PublicationYear,
		Price:           decimal.NewFromFloat(req.Price).Round(2),
		QuantityInStock: req.QuantityInStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Book updated successfully.", result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         库存
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/inventories/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.getBook.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Book retrieved successfully.", result)
}

// SearchBooks 搜索图书
// @Summary      搜索图书
// @Description  按书名、作者、类型、出版年份模糊搜索(忽略大小写),分页
// @Tags         库存
// @Produce      json
// @Param        searchTerm     query string false "关键字"
// @Param        page           query int    false "页码(从0开始)"
// @Param        size           query int    false "每页大小(默认10,最大100)"
// @Param        sortBy         query string false "排序字段" default(createdAt)
// @Param        sort-direction query string false "asc|desc" default(desc)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Router       /api/inventories/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var q dto.SearchBooksQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := h.searchBooks.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		Term:      q.SearchTerm,
		PageQuery: q.ToPageQuery(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, "Books retrieved successfully.", result.Items, result.Total, result.Page, result.Size)
}
