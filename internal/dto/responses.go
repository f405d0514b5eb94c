package dto

import "github.com/heybosswtf/heyboss-backend/internal/models"

// SubmittedFiles описывает артефакты, созданные при отправке жалобы.
// PDF и PDFURL равны nil, если файл не прикладывался.
type SubmittedFiles struct {
	Markdown    string  `json:"markdown"`
	PDF         *string `json:"pdf"`
	MarkdownURL string  `json:"markdownUrl"`
	PDFURL      *string `json:"pdfUrl"`
}

// SubmitReportResponse — ответ на успешную отправку жалобы.
type SubmitReportResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Files   SubmittedFiles `json:"files"`
}

// Pagination — метаданные страницы каталога.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalCount      int  `json:"totalCount"`
	Limit           int  `json:"limit"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// DirectoryFilters эхо применённых фильтров. verified/published принимаются
// для совместимости формы API, но жёсткий гейт видимости они не ослабляют.
type DirectoryFilters struct {
	Search    string `json:"search"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	Verified  *bool  `json:"verified"`
	Published *bool  `json:"published"`
}

// DirectoryResponse — страница публичного каталога.
type DirectoryResponse struct {
	Success    bool                    `json:"success"`
	Data       []models.DirectoryEntry `json:"data"`
	Pagination Pagination              `json:"pagination"`
	Filters    DirectoryFilters        `json:"filters"`
}

// BossResponse — детальная карточка жалобы.
type BossResponse struct {
	Success bool               `json:"success"`
	Data    *models.BossReport `json:"data"`
}

// MarkdownResponse — содержимое markdown-отчёта. Fallback выставляется,
// когда файл из хранилища недоступен и контент синтезирован из записи.
type MarkdownResponse struct {
	Success  bool   `json:"success"`
	Content  string `json:"content"`
	Filename string `json:"filename"`
	Fallback bool   `json:"fallback,omitempty"`
}

// PDFInfoResponse — метаданные PDF-доказательства.
type PDFInfoResponse struct {
	Success  bool   `json:"success"`
	PDFURL   string `json:"pdfUrl"`
	Filename string `json:"filename"`
	BossName string `json:"bossName"`
}
