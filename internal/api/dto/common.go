package dto

// Response 统一返回结构
type Response struct {
	Code    int
	Message string
	Data    interface{}
}

// Page 分页结果，page 超出末页时 items 为空但总数正确
type Page struct {
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Total   int64       `json:"total"`
	Pages   int         `json:"pages"`
	HasPrev bool        `json:"has_prev"`
	HasNext bool        `json:"has_next"`
	Items   interface{} `json:"items"`
}

func NewPage(page, perPage int, total int64, items interface{}) *Page {
	pages := 0
	if total > 0 && perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return &Page{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasPrev: page > 1,
		HasNext: page < pages,
		Items:   items,
	}
}
