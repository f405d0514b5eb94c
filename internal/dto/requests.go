package dto

// ReportData — содержимое поля reportData из multipart формы отправки
// жалобы. Приходит JSON-строкой, categories — строка вида
// "Verbal Abuse, Micromanagement".
type ReportData struct {
	BossName       string `json:"bossName"`
	BossCompany    string `json:"bossCompany"`
	BossPosition   string `json:"bossPosition"`
	BossDepartment string `json:"bossDepartment"`
	BornYear       string `json:"bornYear"`
	WorkLocation   string `json:"workLocation"`
	ReporterEmail  string `json:"reporterEmail"`
	Categories     string `json:"categories"`
	ReportContent  string `json:"reportContent"`
	SubmissionDate string `json:"submissionDate"`
}

// DirectoryQuery — параметры запроса публичного каталога.
type DirectoryQuery struct {
	Page     int
	Limit    int
	Search   string
	Company  string
	Location string
}
