package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/heybosswtf/heyboss-backend/internal/dto"
	"github.com/heybosswtf/heyboss-backend/internal/logger"
	"github.com/heybosswtf/heyboss-backend/internal/models"
	"github.com/heybosswtf/heyboss-backend/internal/pkg/apperror"
	"github.com/heybosswtf/heyboss-backend/internal/storage"
	"github.com/heybosswtf/heyboss-backend/internal/validation"
)

// ReportRepository описывает взаимодействие пайплайна с хранилищем жалоб.
type ReportRepository interface {
	Create(ctx context.Context, report *models.BossReport) error
}

// ObjectStorage загружает артефакты и возвращает публичные URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Notifier отправляет уведомление в канал модерации.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Verifier проверяет анти-бот токен.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// ReportService — пайплайн отправки жалобы: валидация, верификация,
// генерация артефактов, загрузка, уведомление, персист.
//
// Политика отказов: верификация и загрузка фатальны, уведомление и
// персист — нет. Артефакты с уведомлением важнее строгой консистентности:
// запись в базе может не появиться, но доказательства уже сохранены и
// модерация о них знает. Ретраев нигде нет, каждый внешний вызов делается
// один раз.
type ReportService struct {
	repo                 ReportRepository
	files                ObjectStorage
	notifier             Notifier
	verifier             Verifier
	verificationRequired bool
}

// NewReportService создаёт пайплайн. verificationRequired фиксирует
// строгий режим на всё время жизни процесса.
func NewReportService(repo ReportRepository, files ObjectStorage, notifier Notifier, verifier Verifier, verificationRequired bool) *ReportService {
	return &ReportService{
		repo:                 repo,
		files:                files,
		notifier:             notifier,
		verifier:             verifier,
		verificationRequired: verificationRequired,
	}
}

// Submit обрабатывает одну жалобу. pdfData равен nil, если PDF не
// прикладывался. Возвращает имена и URL созданных артефактов.
func (s *ReportService) Submit(ctx context.Context, data *dto.ReportData, pdfData []byte, turnstileToken string) (*dto.SubmittedFiles, error) {
	report, err := buildReport(data)
	if err != nil {
		return nil, err
	}

	if s.verificationRequired {
		if strings.TrimSpace(turnstileToken) == "" {
			return nil, apperror.New(apperror.ErrCodeValidation, "Security verification required")
		}
		if err := s.verifier.Verify(ctx, turnstileToken); err != nil {
			return nil, err
		}
	}

	// Markdown и PDF одной жалобы именуются от одного момента времени:
	// общий префикс и слаг, разные расширения.
	submittedAt := time.Now().UTC()
	markdownFileName := storage.GenerateFileName(report.BossName, "md", submittedAt)
	pdfFileName := ""
	if pdfData != nil {
		pdfFileName = storage.GenerateFileName(report.BossName, "pdf", submittedAt)
	}

	markdownContent := renderMarkdown(report, data.ReporterEmail, strings.TrimSpace(data.ReportContent))

	markdownURL, err := s.files.Upload(ctx, markdownFileName, []byte(markdownContent), "text/markdown")
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUpload, "File upload failed")
	}

	pdfURL := ""
	if pdfData != nil {
		pdfURL, err = s.files.Upload(ctx, pdfFileName, pdfData, "application/pdf")
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeUpload, "File upload failed")
		}
	}

	// Деградация Telegram не должна ронять отправку: доказательства уже
	// в хранилище.
	message := renderNotification(report, data.ReporterEmail, markdownURL, pdfURL)
	if err := s.notifier.Send(ctx, message); err != nil {
		s.logError("report service: не удалось отправить уведомление модерации", err, report.BossName)
	}

	report.MarkdownPath = markdownFileName
	if pdfFileName != "" {
		report.PDFPath = &pdfFileName
	}

	// Сбой персиста не отдаём клиенту: артефакты целы, модерация
	// уведомлена. Но для операторов это громкая ошибка — запись жалобы
	// существует только вне базы.
	if err := s.repo.Create(ctx, report); err != nil {
		s.logError("report service: жалоба не сохранена в базу, остались только артефакты", err, report.BossName)
	}

	files := &dto.SubmittedFiles{
		Markdown:    markdownFileName,
		MarkdownURL: markdownURL,
	}
	if pdfFileName != "" {
		files.PDF = &pdfFileName
		files.PDFURL = &pdfURL
	}
	return files, nil
}

// buildReport валидирует вход и собирает модель без артефактных ключей.
func buildReport(data *dto.ReportData) (*models.BossReport, error) {
	name := strings.TrimSpace(data.BossName)
	if name == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "Missing boss name")
	}
	if err := validation.ValidateLength("boss name", name, 0, validation.MaxBossNameLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	content := strings.TrimSpace(data.ReportContent)
	if content == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "Missing report content")
	}
	if err := validation.ValidateLength("report content", content, validation.MinReportContentLength, validation.MaxReportContentLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	// Опциональные поля ограничены по длине так же, как имя.
	if err := validation.ValidateLength("company", strings.TrimSpace(data.BossCompany), 0, validation.MaxCompanyLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("position", strings.TrimSpace(data.BossPosition), 0, validation.MaxPositionLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateLength("work location", strings.TrimSpace(data.WorkLocation), 0, validation.MaxLocationLength); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	report := &models.BossReport{
		BossName:       name,
		BossCompany:    optional(data.BossCompany),
		BossPosition:   optional(data.BossPosition),
		BossDepartment: optional(data.BossDepartment),
		WorkLocation:   optional(data.WorkLocation),
		Categories:     splitCategories(data.Categories),
	}

	// Нечисловой год считается отсутствующим, числовой обязан быть
	// правдоподобным.
	if raw := strings.TrimSpace(data.BornYear); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			if err := validation.ValidateBornYear(year); err != nil {
				return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
			}
			report.BornYear = &year
		}
	}

	if !validation.IsAnonymousEmail(data.ReporterEmail) {
		if err := validation.ValidateEmail(data.ReporterEmail); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		report.ReporterEmail = optional(data.ReporterEmail)
	}

	// Клиентская дата подачи используется для сортировки и отображения;
	// мусор заменяем серверным временем.
	submittedAt, err := time.Parse(time.RFC3339, data.SubmissionDate)
	if err != nil {
		submittedAt = time.Now().UTC()
	}
	report.SubmissionDate = submittedAt

	return report, nil
}

// renderMarkdown собирает markdown-отчёт по фиксированному шаблону.
// Полный текст жалобы живёт только в артефакте, в базу он не пишется.
func renderMarkdown(report *models.BossReport, reporterEmail, content string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Toxic Boss Report: %s\n\n", report.BossName)
	fmt.Fprintf(&b, "**Report Date:** %s\n\n", report.SubmissionDate.Format("2006-01-02"))

	b.WriteString("## Reporter Information\n")
	fmt.Fprintf(&b, "- **Email:** %s\n\n", displayEmail(reporterEmail))

	b.WriteString("## Boss Information\n")
	fmt.Fprintf(&b, "- **Name:** %s\n", report.BossName)
	fmt.Fprintf(&b, "- **Company:** %s\n", deref(report.BossCompany))
	fmt.Fprintf(&b, "- **Position:** %s\n", deref(report.BossPosition))
	fmt.Fprintf(&b, "- **Department:** %s\n", deref(report.BossDepartment))
	fmt.Fprintf(&b, "- **Born Year:** %s\n", derefYear(report.BornYear))
	fmt.Fprintf(&b, "- **Location:** %s\n\n", deref(report.WorkLocation))

	b.WriteString("## Types of Toxic Behavior\n")
	fmt.Fprintf(&b, "%s\n\n", strings.Join(report.Categories, ", "))

	b.WriteString("## Detailed Report\n")
	b.WriteString(content)
	b.WriteString("\n\n---\n*Report submitted via HeyBoss.WTF*\n")

	return b.String()
}

// renderNotification собирает сообщение для канала модерации со ссылками
// на загруженные артефакты.
func renderNotification(report *models.BossReport, reporterEmail, markdownURL, pdfURL string) string {
	var b strings.Builder

	b.WriteString("🚨 **NEW TOXIC BOSS REPORT** 🚨\n\n")
	fmt.Fprintf(&b, "**Boss:** %s\n", report.BossName)
	fmt.Fprintf(&b, "**Company:** %s\n", deref(report.BossCompany))
	fmt.Fprintf(&b, "**Position:** %s\n", deref(report.BossPosition))
	fmt.Fprintf(&b, "**Department:** %s\n", deref(report.BossDepartment))
	fmt.Fprintf(&b, "**Born Year:** %s\n\n", derefYear(report.BornYear))

	b.WriteString("**Behavior Categories:**\n")
	fmt.Fprintf(&b, "%s\n\n", strings.Join(report.Categories, ", "))

	fmt.Fprintf(&b, "**Location:** %s\n", deref(report.WorkLocation))
	fmt.Fprintf(&b, "**Reporter Email:** %s\n\n", displayEmail(reporterEmail))
	fmt.Fprintf(&b, "🕐 **Submitted:** %s\n\n", time.Now().UTC().Format(time.RFC1123))

	b.WriteString("📄 **Report Files:**\n")
	fmt.Fprintf(&b, "📝 Detailed Report: %s", markdownURL)
	if pdfURL != "" {
		fmt.Fprintf(&b, "\n📎 PDF Evidence: %s", pdfURL)
	}

	return b.String()
}

func (s *ReportService) logError(msg string, err error, bossName string) {
	if logger.Log == nil {
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"error":     err.Error(),
		"boss_name": bossName,
	}).Error(msg)
}

// splitCategories разбирает строку "A, B, C" в набор категорий. Известные
// категории приводятся к каноническому написанию таксономии, незнакомые
// строки сохраняются как есть: клиенту верить нельзя, но и терять его
// ввод не нужно.
func splitCategories(raw string) pq.StringArray {
	categories := pq.StringArray{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			categories = append(categories, canonicalCategory(trimmed))
		}
	}
	return categories
}

func canonicalCategory(value string) string {
	for _, known := range models.ToxicBehaviorCategories {
		if strings.EqualFold(known, value) {
			return known
		}
	}
	return value
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func derefYear(year *int) string {
	if year == nil {
		return ""
	}
	return strconv.Itoa(*year)
}

func displayEmail(email string) string {
	if validation.IsAnonymousEmail(email) {
		return "Anonymous"
	}
	return strings.TrimSpace(email)
}
