package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/heybosswtf/heyboss-backend/internal/dto"
	"github.com/heybosswtf/heyboss-backend/internal/logger"
	"github.com/heybosswtf/heyboss-backend/internal/models"
	"github.com/heybosswtf/heyboss-backend/internal/pkg/apperror"
	"github.com/heybosswtf/heyboss-backend/internal/repository"
)

// DetailRepository описывает запросы разрешения идентификатора.
type DetailRepository interface {
	GetByID(ctx context.Context, id string) (*models.BossReport, error)
	FindVisibleByNameCompany(ctx context.Context, namePart, companyPart string) (*models.BossReport, error)
}

// ArtifactFetcher читает артефакты из публичного бакета.
type ArtifactFetcher interface {
	FetchPublic(ctx context.Context, key string) ([]byte, error)
	PublicURL(key string) string
}

// DetailService разрешает идентификатор или слаг в одну видимую жалобу и
// отдаёт её артефакты.
type DetailService struct {
	repo  DetailRepository
	files ArtifactFetcher
}

func NewDetailService(repo DetailRepository, files ArtifactFetcher) *DetailService {
	return &DetailService{repo: repo, files: files}
}

// Resolve ищет жалобу сначала по id, затем разбором слага. Невидимые
// записи неотличимы от несуществующих: наружу в обоих случаях уходит 404.
func (s *DetailService) Resolve(ctx context.Context, id string) (*models.BossReport, error) {
	report, err := s.repo.GetByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrReportNotFound) {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "Internal server error")
	}

	if report == nil && strings.Contains(id, "-") {
		report, err = s.resolveSlug(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	if report == nil || !report.Published || !report.Verified {
		return nil, apperror.ErrReportNotFound
	}

	return report, nil
}

// resolveSlug перебирает точки разреза слага: префикс токенов считается
// фрагментом имени, суффикс — фрагментом компании. Берётся первое
// совпадение по возрастанию точки разреза; эвристика может выбрать не ту
// запись при неоднозначном слаге.
func (s *DetailService) resolveSlug(ctx context.Context, slug string) (*models.BossReport, error) {
	parts := strings.Split(slug, "-")

	for i := 1; i < len(parts); i++ {
		namePart := strings.Join(parts[:i], " ")
		companyPart := strings.Join(parts[i:], " ")

		report, err := s.repo.FindVisibleByNameCompany(ctx, namePart, companyPart)
		if errors.Is(err, repository.ErrReportNotFound) {
			continue
		}
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "Internal server error")
		}
		return report, nil
	}

	return nil, nil
}

// GetMarkdown отдаёт markdown-отчёт жалобы. Если хранилище недоступно,
// вместо ошибки синтезируется запасной документ из полей записи — битых
// страниц у опубликованных жалоб быть не должно.
func (s *DetailService) GetMarkdown(ctx context.Context, id string) (*dto.MarkdownResponse, error) {
	report, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	if report.MarkdownPath == "" {
		return nil, apperror.New(apperror.ErrCodeNotFound, "Markdown file not found")
	}

	content, err := s.files.FetchPublic(ctx, report.MarkdownPath)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error": err.Error(),
				"key":   report.MarkdownPath,
			}).Error("detail service: markdown недоступен, отдаём запасной документ")
		}
		return &dto.MarkdownResponse{
			Success:  true,
			Content:  fallbackMarkdown(report),
			Filename: "fallback.md",
			Fallback: true,
		}, nil
	}

	return &dto.MarkdownResponse{
		Success:  true,
		Content:  string(content),
		Filename: report.MarkdownPath,
	}, nil
}

// GetPDFInfo отдаёт метаданные PDF-доказательства.
func (s *DetailService) GetPDFInfo(ctx context.Context, id string) (*dto.PDFInfoResponse, error) {
	report, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	if report.PDFPath == nil {
		return nil, apperror.New(apperror.ErrCodeNotFound, "PDF file not found")
	}

	return &dto.PDFInfoResponse{
		Success:  true,
		PDFURL:   s.files.PublicURL(*report.PDFPath),
		Filename: *report.PDFPath,
		BossName: report.BossName,
	}, nil
}

// GetPDFContent проксирует байты PDF из хранилища.
func (s *DetailService) GetPDFContent(ctx context.Context, id string) ([]byte, error) {
	report, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	if report.PDFPath == nil {
		return nil, apperror.New(apperror.ErrCodeNotFound, "PDF file not found")
	}

	content, err := s.files.FetchPublic(ctx, *report.PDFPath)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "PDF file not accessible")
	}

	return content, nil
}

// fallbackMarkdown синтезирует документ из полей записи, когда настоящий
// отчёт недоступен.
func fallbackMarkdown(report *models.BossReport) string {
	company := "Not specified"
	if report.BossCompany != nil {
		company = *report.BossCompany
	}

	return fmt.Sprintf(`# Toxic Boss Report: %s

**Report Date:** %s

## Boss Information
- **Name:** %s
- **Company:** %s

## Report Status
This report has been verified and published.

*The detailed markdown file could not be loaded at this time. Please try again later.*

---
*Report submitted via HeyBoss.WTF*
`, report.BossName, time.Now().UTC().Format("2006-01-02"), report.BossName, company)
}
