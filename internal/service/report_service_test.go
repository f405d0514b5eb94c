package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/heybosswtf/heyboss-backend/internal/dto"
	"github.com/heybosswtf/heyboss-backend/internal/models"
	"github.com/heybosswtf/heyboss-backend/internal/pkg/apperror"
)

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) Create(ctx context.Context, report *models.BossReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

type mockObjectStorage struct {
	mock.Mock
}

func (m *mockObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Send(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func validReportData() *dto.ReportData {
	return &dto.ReportData{
		BossName:       "Jane Doe",
		BossCompany:    "Evil Corp",
		BossPosition:   "Manager",
		BossDepartment: "IT",
		BornYear:       "1980",
		WorkLocation:   "New York",
		ReporterEmail:  "reporter@example.com",
		Categories:     "Verbal Abuse, Micromanagement",
		ReportContent:  "This boss is very toxic and abusive",
		SubmissionDate: time.Now().UTC().Format(time.RFC3339),
	}
}

func newPermissiveService(repo *mockReportRepo, files *mockObjectStorage, notifier *mockNotifier) *ReportService {
	return NewReportService(repo, files, notifier, new(mockVerifier), false)
}

var markdownFilePattern = regexp.MustCompile(`^\d{10}-jane-doe\.md$`)

func TestReportService_Submit_Success_NoPDF(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	svc := newPermissiveService(repo, files, notifier)
	ctx := context.Background()

	files.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, "text/markdown").
		Return("https://static-dev.heyboss.wtf/report.md", nil)
	notifier.On("Send", ctx, mock.AnythingOfType("string")).Return(nil)

	var saved *models.BossReport
	repo.On("Create", ctx, mock.AnythingOfType("*models.BossReport")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*models.BossReport)
		}).Return(nil)

	result, err := svc.Submit(ctx, validReportData(), nil, "")

	assert.NoError(t, err)
	assert.True(t, markdownFilePattern.MatchString(result.Markdown))
	assert.Nil(t, result.PDF)
	assert.Nil(t, result.PDFURL)
	assert.Equal(t, "https://static-dev.heyboss.wtf/report.md", result.MarkdownURL)

	// Запись создана с выключенными флагами модерации и без PDF.
	assert.NotNil(t, saved)
	assert.False(t, saved.Verified)
	assert.False(t, saved.Published)
	assert.False(t, saved.Locked)
	assert.Nil(t, saved.PDFPath)
	assert.Equal(t, result.Markdown, saved.MarkdownPath)
	assert.Equal(t, []string{"Verbal Abuse", "Micromanagement"}, []string(saved.Categories))
}

func TestReportService_Submit_WithPDF(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	svc := newPermissiveService(repo, files, notifier)
	ctx := context.Background()

	files.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, "text/markdown").
		Return("https://static-dev.heyboss.wtf/report.md", nil)
	files.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, "application/pdf").
		Return("https://static-dev.heyboss.wtf/report.pdf", nil)
	notifier.On("Send", ctx, mock.AnythingOfType("string")).Return(nil)

	var saved *models.BossReport
	repo.On("Create", ctx, mock.AnythingOfType("*models.BossReport")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*models.BossReport)
		}).Return(nil)

	result, err := svc.Submit(ctx, validReportData(), []byte("%PDF-1.4"), "")

	assert.NoError(t, err)
	assert.NotNil(t, result.PDF)
	assert.NotNil(t, result.PDFURL)
	assert.Regexp(t, `^\d{10}-jane-doe\.pdf$`, *result.PDF)

	// Markdown и PDF различаются только расширением.
	assert.Equal(t,
		strings.TrimSuffix(result.Markdown, ".md"),
		strings.TrimSuffix(*result.PDF, ".pdf"))

	assert.NotNil(t, saved)
	assert.NotNil(t, saved.PDFPath)
	assert.Equal(t, *result.PDF, *saved.PDFPath)
}

func TestReportService_Submit_MarkdownTemplate(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	svc := newPermissiveService(repo, files, notifier)
	ctx := context.Background()

	var uploaded []byte
	files.On("Upload", ctx, mock.AnythingOfType("string"), mock.Anything, "text/markdown").
		Run(func(args mock.Arguments) {
			uploaded = args.Get(2).([]byte)
		}).Return("https://static-dev.heyboss.wtf/report.md", nil)
	notifier.On("Send", ctx, mock.AnythingOfType("string")).Return(nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.Submit(ctx, validReportData(), nil, "")

	assert.NoError(t, err)
	content := string(uploaded)
	assert.Contains(t, content, "# Toxic Boss Report: Jane Doe")
	assert.Contains(t, content, "- **Company:** Evil Corp")
	assert.Contains(t, content, "Verbal Abuse, Micromanagement")
	assert.Contains(t, content, "## Detailed Report\nThis boss is very toxic and abusive")
	assert.Contains(t, content, "*Report submitted via HeyBoss.WTF*")
}

func TestReportService_Submit_MissingBossName(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	svc := newPermissiveService(repo, files, notifier)

	data := validReportData()
	data.BossName = "   "

	_, err := svc.Submit(context.Background(), data, nil, "")

	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "Missing boss name")

	// Никаких побочных эффектов до валидации.
	files.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_Submit_MissingContent(t *testing.T) {
	svc := newPermissiveService(new(mockReportRepo), new(mockObjectStorage), new(mockNotifier))

	data := validReportData()
	data.ReportContent = ""

	_, err := svc.Submit(context.Background(), data, nil, "")

	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "Missing report content")
}

func TestReportService_Submit_ContentTooShort(t *testing.T) {
	svc := newPermissiveService(new(mockReportRepo), new(mockObjectStorage), new(mockNotifier))

	data := validReportData()
	data.ReportContent = "short"

	_, err := svc.Submit(context.Background(), data, nil, "")

	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "at least 10 characters")
}

func TestReportService_Submit_CategoryNormalization(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	svc := newPermissiveService(repo, files, notifier)
	ctx := context.Background()

	files.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("url", nil)
	notifier.On("Send", ctx, mock.Anything).Return(nil)

	var saved *models.BossReport
	repo.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*models.BossReport)
		}).Return(nil)

	data := validReportData()
	data.Categories = "verbal abuse, GASLIGHTING, Quiet Firing"

	_, err := svc.Submit(ctx, data, nil, "")

	assert.NoError(t, err)
	// Известные категории приводятся к написанию таксономии, незнакомые
	// сохраняются как есть.
	assert.Equal(t, []string{"Verbal Abuse", "Gaslighting", "Quiet Firing"}, []string(saved.Categories))
}

func TestReportService_Submit_OptionalFieldTooLong(t *testing.T) {
	svc := newPermissiveService(new(mockReportRepo), new(mockObjectStorage), new(mockNotifier))
	ctx := context.Background()

	data := validReportData()
	data.BossCompany = strings.Repeat("a", 201)
	_, err := svc.Submit(ctx, data, nil, "")
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "company must be at most 200 characters")

	data = validReportData()
	data.BossPosition = strings.Repeat("a", 201)
	_, err = svc.Submit(ctx, data, nil, "")
	assert.True(t, apperror.IsValidation(err))

	data = validReportData()
	data.WorkLocation = strings.Repeat("a", 201)
	_, err = svc.Submit(ctx, data, nil, "")
	assert.True(t, apperror.IsValidation(err))
}

func TestReportService_Submit_ImplausibleBornYear(t *testing.T) {
	svc := newPermissiveService(new(mockReportRepo), new(mockObjectStorage), new(mockNotifier))

	data := validReportData()
	data.BornYear = "1890"

	_, err := svc.Submit(context.Background(), data, nil, "")

	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "born year")
}

func TestReportService_Submit_InvalidEmail(t *testing.T) {
	svc := newPermissiveService(new(mockReportRepo), new(mockObjectStorage), new(mockNotifier))

	data := validReportData()
	data.ReporterEmail = "not-an-email"

	_, err := svc.Submit(context.Background(), data, nil, "")

	assert.True(t, apperror.IsValidation(err))
}

func TestReportService_Submit_AnonymousEmailAllowed(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	svc := newPermissiveService(repo, files, notifier)
	ctx := context.Background()

	files.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("url", nil)
	notifier.On("Send", ctx, mock.Anything).Return(nil)

	var saved *models.BossReport
	repo.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*models.BossReport)
		}).Return(nil)

	data := validReportData()
	data.ReporterEmail = "Anonymous"

	_, err := svc.Submit(ctx, data, nil, "")

	assert.NoError(t, err)
	assert.Nil(t, saved.ReporterEmail)
}

func TestReportService_Submit_StrictMode_MissingToken(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	verifier := new(mockVerifier)
	svc := NewReportService(repo, files, new(mockNotifier), verifier, true)

	_, err := svc.Submit(context.Background(), validReportData(), nil, "")

	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "Security verification required")
	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	files.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_Submit_StrictMode_VerificationFailed(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	verifier := new(mockVerifier)
	svc := NewReportService(repo, files, notifier, verifier, true)
	ctx := context.Background()

	verifier.On("Verify", ctx, "bad-token").
		Return(apperror.New(apperror.ErrCodeVerificationFailed, "Security verification failed"))

	_, err := svc.Submit(ctx, validReportData(), nil, "bad-token")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Security verification failed")

	// Провал верификации фатален: ни артефактов, ни уведомления, ни записи.
	files.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_Submit_StrictMode_TokenAccepted(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	verifier := new(mockVerifier)
	svc := NewReportService(repo, files, notifier, verifier, true)
	ctx := context.Background()

	verifier.On("Verify", ctx, "good-token").Return(nil)
	files.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("url", nil)
	notifier.On("Send", ctx, mock.Anything).Return(nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.Submit(ctx, validReportData(), nil, "good-token")

	assert.NoError(t, err)
	verifier.AssertExpectations(t)
}

func TestReportService_Submit_UploadFailure_Fatal(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	svc := newPermissiveService(repo, files, notifier)
	ctx := context.Background()

	files.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket unreachable"))

	_, err := svc.Submit(ctx, validReportData(), nil, "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "File upload failed")

	// Жалобу без артефактов не персистим и модерацию не зовём.
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReportService_Submit_NotificationFailure_NonFatal(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	svc := newPermissiveService(repo, files, notifier)
	ctx := context.Background()

	files.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("url", nil)
	notifier.On("Send", ctx, mock.Anything).Return(errors.New("telegram degraded"))
	repo.On("Create", ctx, mock.Anything).Return(nil)

	result, err := svc.Submit(ctx, validReportData(), nil, "")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	// Персист идёт независимо от судьбы уведомления.
	repo.AssertCalled(t, "Create", ctx, mock.Anything)
}

func TestReportService_Submit_PersistFailure_NonFatal(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	svc := newPermissiveService(repo, files, notifier)
	ctx := context.Background()

	files.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("url", nil)
	notifier.On("Send", ctx, mock.Anything).Return(nil)
	repo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

	result, err := svc.Submit(ctx, validReportData(), nil, "")

	// Клиент всё равно получает успех: артефакты загружены.
	assert.NoError(t, err)
	assert.True(t, markdownFilePattern.MatchString(result.Markdown))
}

func TestReportService_Submit_NotificationContainsLinks(t *testing.T) {
	repo := new(mockReportRepo)
	files := new(mockObjectStorage)
	notifier := new(mockNotifier)
	svc := newPermissiveService(repo, files, notifier)
	ctx := context.Background()

	files.On("Upload", ctx, mock.Anything, mock.Anything, "text/markdown").
		Return("https://static-dev.heyboss.wtf/r.md", nil)
	files.On("Upload", ctx, mock.Anything, mock.Anything, "application/pdf").
		Return("https://static-dev.heyboss.wtf/r.pdf", nil)

	var message string
	notifier.On("Send", ctx, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			message = args.Get(1).(string)
		}).Return(nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.Submit(ctx, validReportData(), []byte("%PDF-1.4"), "")

	assert.NoError(t, err)
	assert.Contains(t, message, "NEW TOXIC BOSS REPORT")
	assert.Contains(t, message, "**Boss:** Jane Doe")
	assert.Contains(t, message, "https://static-dev.heyboss.wtf/r.md")
	assert.Contains(t, message, "https://static-dev.heyboss.wtf/r.pdf")
}
