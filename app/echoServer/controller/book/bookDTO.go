package book

type UploadBookReq struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       string `json:"genre" validate:"required,oneof=fiction mystery romance science-fiction fantasy biography history science philosophy poetry"`
	Language    string `json:"language" validate:"required,len=2"`
	Description string `json:"description"`
}

type ListQuery struct {
	Genre    string `query:"genre"`
	Language string `query:"language"`
	Q        string `query:"q"`
	Page     int    `query:"page"`
}
