package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Storage отвечает за артефакты жалоб в Cloudflare R2. Запись идёт
// через S3-совместимый API, чтение — по публичному хосту бакета.
type R2Storage struct {
	client     *s3.Client
	bucket     string
	publicHost string
	httpClient *http.Client
}

// NewR2Storage создаёт клиент хранилища.
// Пустые учётные данные допустимы в development: клиент соберётся, а
// сбой случится на первом PutObject. Production-конфиг требует их заранее.
func NewR2Storage(ctx context.Context, accountID, accessKeyID, secretAccessKey, bucket, publicHost string) (*R2Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось собрать конфигурацию S3: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Storage{
		client:     client,
		bucket:     bucket,
		publicHost: publicHost,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Upload загружает объект и возвращает его публичный URL.
// Повторных попыток нет: сбой хранилища фатален для отправки жалобы.
func (s *R2Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: не удалось загрузить %s: %w", key, err)
	}

	return s.PublicURL(key), nil
}

// FetchPublic читает объект через публичный хост бакета.
func (s *R2Storage) FetchPublic(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.PublicURL(key), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось прочитать %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage: код ответа %d для %s", resp.StatusCode, key)
	}

	return io.ReadAll(resp.Body)
}

// PublicURL формирует публичный URL объекта.
func (s *R2Storage) PublicURL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.publicHost, "https://"), "http://")
	return fmt.Sprintf("https://%s/%s", host, key)
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
)

// GenerateFileName строит детерминированное имя артефакта:
// префикс YYMMDDHHMM (UTC) плюс слаг имени. Момент времени передаётся
// снаружи: markdown и PDF одной жалобы именуются от одного момента и
// различаются только расширением, даже на границе минуты.
func GenerateFileName(bossName, extension string, now time.Time) string {
	timestamp := now.UTC().Format("0601021504")
	return fmt.Sprintf("%s-%s.%s", timestamp, SanitizeSlug(bossName), extension)
}

// SanitizeSlug приводит имя к слагу: нижний регистр, только латинские
// буквы и цифры, пробелы схлопываются в одиночный дефис.
func SanitizeSlug(name string) string {
	slug := strings.ToLower(name)
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(strings.TrimSpace(slug), "-")
	return strings.Trim(slug, "-")
}
