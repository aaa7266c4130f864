package dto

// AddBookRequest 新增图书请求
// genre/booktitle/isbn为自定义校验,见pkg/validator
type AddBookRequest struct {
	Title           string  `json:"title" binding:"required,booktitle" example:"Dune"`
	Genre           string  `json:"genre" binding:"required,genre" example:"FICTION"`
	ISBN            string  `json:"isbn" binding:"required,isbn" example:"978-0441013593"`
	Author          string  `json:"author" binding:"required" example:"Frank Herbert"`
	PublicationYear int     `json:"publicationYear" binding:"required,min=1000,max=9999" example:"1965"`
	Price           float64 `json:"price" binding:"min=1" example:"19.99"`
	QuantityInStock int     `json:"quantityInStock" binding:"min=1" example:"10"`
}

// UpdateBookRequest 更新图书请求
// 不传quantityInStock时保持原库存,允许更新为0
type UpdateBookRequest struct {
	Title           string  `json:"title" binding:"required,booktitle" example:"Dune Messiah"`
	Genre           string  `json:"genre" binding:"required,genre" example:"FICTION"`
	ISBN            string  `json:"isbn" binding:"required,isbn" example:"978-0593098233"`
	Author          string  `json:"author" binding:"required" example:"Frank Herbert"`
	PublicationYear int     `json:"publicationYear" binding:"required,min=1000,max=9999" example:"1969"`
	Price           float64 `json:"price" binding:"min=1" example:"15.50"`
	QuantityInStock *int    `json:"quantityInStock" binding:"omitempty,min=0" example:"5"`
}

// SearchBooksQuery 图书搜索参数
type SearchBooksQuery struct {
	SearchTerm string `form:"searchTerm" example:"dune"`
	PageParams
}
