package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/heybosswtf/heyboss-backend/internal/models"
)

var ErrReportNotFound = errors.New("boss report not found")

// directoryColumns — проекция для публичного каталога: без email
// репортёра и ключей артефактов.
const directoryColumns = `id, boss_name, boss_company, boss_position, boss_department,
	born_year, work_location, categories, submission_date, verified, published, locked, created_at`

// DirectoryFilter — фильтры каталога. Все подстроки матчатся без учёта
// регистра; гейт published && verified применяется всегда и не отключается.
type DirectoryFilter struct {
	Search   string
	Company  string
	Location string
	Limit    int
	Offset   int
}

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create сохраняет жалобу. ID генерируется здесь, verified/published/locked
// всегда стартуют как false независимо от входа.
func (r *ReportRepository) Create(ctx context.Context, report *models.BossReport) error {
	report.ID = uuid.NewString()
	if report.Categories == nil {
		report.Categories = pq.StringArray{}
	}

	return r.db.QueryRowContext(ctx, `
		INSERT INTO boss_reports (
			id, boss_name, boss_company, boss_position, boss_department,
			born_year, work_location, reporter_email, categories,
			markdown_path, pdf_path, submission_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING verified, published, locked, created_at
	`, report.ID, report.BossName, report.BossCompany, report.BossPosition, report.BossDepartment,
		report.BornYear, report.WorkLocation, report.ReporterEmail, report.Categories,
		report.MarkdownPath, report.PDFPath, report.SubmissionDate).
		Scan(&report.Verified, &report.Published, &report.Locked, &report.CreatedAt)
}

// GetByID ищет жалобу по идентификатору без гейта видимости: вызывающая
// сторона сама решает, можно ли отдавать непубличную запись.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.BossReport, error) {
	var report models.BossReport
	err := r.db.GetContext(ctx, &report, `SELECT * FROM boss_reports WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("report repository: get by id: %w", err)
	}
	return &report, nil
}

// Гейт видимости продублирован в каждом читающем запросе каталога и
// разбора слага; запрос вынесен в константу, чтобы тесты фиксировали его.
const findVisibleByNameCompanyQuery = `
	SELECT * FROM boss_reports
	WHERE boss_name ILIKE $1
	  AND boss_company ILIKE $2
	  AND published = TRUE AND verified = TRUE
	ORDER BY submission_date DESC, id DESC
	LIMIT 1
`

// FindVisibleByNameCompany ищет первую видимую запись, у которой имя и
// компания содержат заданные фрагменты. Используется при разборе слага.
func (r *ReportRepository) FindVisibleByNameCompany(ctx context.Context, namePart, companyPart string) (*models.BossReport, error) {
	var report models.BossReport
	err := r.db.GetContext(ctx, &report, findVisibleByNameCompanyQuery,
		"%"+namePart+"%", "%"+companyPart+"%")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("report repository: find by slug parts: %w", err)
	}
	return &report, nil
}

// ListVisible возвращает страницу каталога. Порядок детерминирован:
// submission_date DESC с добивкой по id для равных дат.
func (r *ReportRepository) ListVisible(ctx context.Context, f DirectoryFilter) ([]models.DirectoryEntry, error) {
	where, args := buildDirectoryWhere(f)

	query := fmt.Sprintf(`
		SELECT %s FROM boss_reports
		%s
		ORDER BY submission_date DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, directoryColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	entries := []models.DirectoryEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("report repository: list visible: %w", err)
	}
	return entries, nil
}

// CountVisible считает записи под теми же фильтрами, что и ListVisible.
func (r *ReportRepository) CountVisible(ctx context.Context, f DirectoryFilter) (int, error) {
	where, args := buildDirectoryWhere(f)

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM boss_reports %s`, where)
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("report repository: count visible: %w", err)
	}
	return count, nil
}

// buildDirectoryWhere собирает WHERE для каталога. Поиск по search идёт
// по имени, компании и должности через OR, остальные фильтры через AND.
func buildDirectoryWhere(f DirectoryFilter) (string, []interface{}) {
	conditions := []string{"published = TRUE", "verified = TRUE"}
	args := []interface{}{}

	if f.Search != "" {
		p := len(args) + 1
		conditions = append(conditions, fmt.Sprintf(
			"(boss_name ILIKE $%d OR boss_company ILIKE $%d OR boss_position ILIKE $%d)", p, p, p))
		args = append(args, "%"+f.Search+"%")
	}
	if f.Company != "" {
		conditions = append(conditions, fmt.Sprintf("boss_company ILIKE $%d", len(args)+1))
		args = append(args, "%"+f.Company+"%")
	}
	if f.Location != "" {
		conditions = append(conditions, fmt.Sprintf("work_location ILIKE $%d", len(args)+1))
		args = append(args, "%"+f.Location+"%")
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
