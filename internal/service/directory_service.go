package service

import (
	"context"

	"github.com/heybosswtf/heyboss-backend/internal/dto"
	"github.com/heybosswtf/heyboss-backend/internal/models"
	"github.com/heybosswtf/heyboss-backend/internal/pkg/apperror"
	"github.com/heybosswtf/heyboss-backend/internal/repository"
)

// DirectoryRepository описывает читающую сторону каталога.
type DirectoryRepository interface {
	ListVisible(ctx context.Context, f repository.DirectoryFilter) ([]models.DirectoryEntry, error)
	CountVisible(ctx context.Context, f repository.DirectoryFilter) (int, error)
}

// DirectoryService отдаёт страницы публичного каталога. Гейт видимости
// (published && verified) зашит в запросы репозитория и отсюда не
// управляется.
type DirectoryService struct {
	repo DirectoryRepository
}

func NewDirectoryService(repo DirectoryRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

// List возвращает страницу каталога с метаданными пагинации. Страница за
// пределами диапазона — это пустые данные с честным totalCount, не ошибка.
func (s *DirectoryService) List(ctx context.Context, q dto.DirectoryQuery) (*dto.DirectoryResponse, error) {
	if q.Page < 1 {
		return nil, apperror.New(apperror.ErrCodeValidation, "Page must be greater than 0")
	}
	if q.Limit < 1 || q.Limit > 100 {
		return nil, apperror.New(apperror.ErrCodeValidation, "Limit must be between 1 and 100")
	}

	filter := repository.DirectoryFilter{
		Search:   q.Search,
		Company:  q.Company,
		Location: q.Location,
		Limit:    q.Limit,
		Offset:   (q.Page - 1) * q.Limit,
	}

	totalCount, err := s.repo.CountVisible(ctx, filter)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "Internal server error")
	}

	entries, err := s.repo.ListVisible(ctx, filter)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "Internal server error")
	}

	totalPages := (totalCount + q.Limit - 1) / q.Limit

	return &dto.DirectoryResponse{
		Success: true,
		Data:    entries,
		Pagination: dto.Pagination{
			CurrentPage:     q.Page,
			TotalPages:      totalPages,
			TotalCount:      totalCount,
			Limit:           q.Limit,
			HasNextPage:     q.Page < totalPages,
			HasPreviousPage: q.Page > 1,
		},
		Filters: dto.DirectoryFilters{
			Search:   q.Search,
			Company:  q.Company,
			Location: q.Location,
		},
	}, nil
}
