package models

import (
	"time"

	"github.com/lib/pq"
)

// Таксономия категорий токсичного поведения. Клиент присылает свободный
// список строк, но формы на фронте строятся вокруг этих значений.
var ToxicBehaviorCategories = []string{
	"Verbal Abuse",
	"Micromanagement",
	"Workplace Bullying",
	"Sexual Harassment",
	"Discrimination",
	"Favoritism",
	"Unrealistic Expectations",
	"Public Humiliation",
	"Passive Aggressive",
	"Gaslighting",
	"Credit Stealing",
	"Intimidation",
	"Overworking",
	"Backstabbing",
	"Emotional Manipulation",
}

// BossReport — единственная персистентная сущность: жалоба на руководителя.
// Публично видима только при Verified && Published; оба флага выставляет
// внешний процесс модерации, здесь они никогда не меняются.
type BossReport struct {
	ID             string         `db:"id" json:"id"`
	BossName       string         `db:"boss_name" json:"bossName"`
	BossCompany    *string        `db:"boss_company" json:"bossCompany"`
	BossPosition   *string        `db:"boss_position" json:"bossPosition"`
	BossDepartment *string        `db:"boss_department" json:"bossDepartment"`
	BornYear       *int           `db:"born_year" json:"bornYear"`
	WorkLocation   *string        `db:"work_location" json:"workLocation"`
	ReporterEmail  *string        `db:"reporter_email" json:"reporterEmail"`
	Categories     pq.StringArray `db:"categories" json:"categories"`
	MarkdownPath   string         `db:"markdown_path" json:"markdownPath"`
	PDFPath        *string        `db:"pdf_path" json:"pdfPath"`
	SubmissionDate time.Time      `db:"submission_date" json:"submissionDate"`
	Verified       bool           `db:"verified" json:"verified"`
	Published      bool           `db:"published" json:"published"`
	Locked         bool           `db:"locked" json:"locked"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
}

// DirectoryEntry — урезанная проекция BossReport для публичного каталога.
// Email репортёра и ключи артефактов наружу не отдаются.
type DirectoryEntry struct {
	ID             string         `db:"id" json:"id"`
	BossName       string         `db:"boss_name" json:"bossName"`
	BossCompany    *string        `db:"boss_company" json:"bossCompany"`
	BossPosition   *string        `db:"boss_position" json:"bossPosition"`
	BossDepartment *string        `db:"boss_department" json:"bossDepartment"`
	BornYear       *int           `db:"born_year" json:"bornYear"`
	WorkLocation   *string        `db:"work_location" json:"workLocation"`
	Categories     pq.StringArray `db:"categories" json:"categories"`
	SubmissionDate time.Time      `db:"submission_date" json:"submissionDate"`
	Verified       bool           `db:"verified" json:"verified"`
	Published      bool           `db:"published" json:"published"`
	Locked         bool           `db:"locked" json:"locked"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
}
