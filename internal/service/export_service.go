package service

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/h2non/filetype"
	config "github.com/pattadon/socialshift/configs"
	"github.com/pattadon/socialshift/internal/models"
	"github.com/pattadon/socialshift/internal/repository"
	"github.com/pattadon/socialshift/pkg/utils"
)

// ScheduleSnapshot is the archive format for backup/restore: a flat JSON
// dump of everything the scheduler derives its state from.
type ScheduleSnapshot struct {
	ExportedAt time.Time              `json:"exported_at"`
	Creators   []*models.Creator      `json:"creators"`
	Accounts   []*models.Account      `json:"accounts"`
	PostLogs   []*models.PostLogEntry `json:"post_logs"`
}

type ImportSummary struct {
	Creators int `json:"creators"`
	Accounts int `json:"accounts"`
	PostLogs int `json:"post_logs"`
	Restored int `json:"restored"`
}

type ExportService interface {
	Export(ctx context.Context) (string, error)
	Import(ctx context.Context, data []byte) (*ImportSummary, error)
}

type exportService struct {
	cfg config.Config
	cr  repository.CreatorRepository
	ar  repository.AccountRepository
	lr  repository.PostLogRepository
	r2  R2Service
}

func NewExportService(
	cfg config.Config,
	cr repository.CreatorRepository,
	ar repository.AccountRepository,
	lr repository.PostLogRepository,
	r2 R2Service) ExportService {
	return &exportService{
		cfg: cfg,
		cr:  cr,
		ar:  ar,
		lr:  lr,
		r2:  r2,
	}
}

// Export uploads a gzipped, encrypted snapshot of the schedule data to R2
// and returns the object key.
func (s *exportService) Export(ctx context.Context) (string, error) {
	snapshot := ScheduleSnapshot{ExportedAt: time.Now().UTC()}

	var err error
	if snapshot.Creators, err = s.cr.List(ctx); err != nil {
		return "", err
	}
	if snapshot.Accounts, err = s.ar.List(ctx); err != nil {
		return "", err
	}
	if snapshot.PostLogs, err = s.lr.List(ctx); err != nil {
		return "", err
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(raw); err != nil {
		slog.Info(err.Error())
		return "", err
	}
	if err := gz.Close(); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	sealed, err := utils.Encrypt(buf.Bytes(), []byte(s.cfg.SecretKey))
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("backups/socialshift-%s.json.gz.enc", time.Now().UTC().Format("20060102-150405"))
	if err := s.r2.Upload(ctx, key, []byte(sealed), "application/octet-stream"); err != nil {
		return "", err
	}

	return key, nil
}

// Import restores post logs from an exported archive. Entries already
// present are left alone; creators and accounts are only counted, the
// operator re-links them explicitly.
func (s *exportService) Import(ctx context.Context, data []byte) (*ImportSummary, error) {
	compressed, err := utils.Decrypt(string(data), []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, errors.New("archive cannot be decrypted; wrong server key or corrupt file")
	}

	kind, _ := filetype.Match(compressed)
	if kind.Extension != "gz" {
		err = fmt.Errorf("unexpected archive content type %q", kind.Extension)
		slog.Info(err.Error())
		return nil, err
	}

	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer gz.Close()

	raw, err := io.ReadAll(gz)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	var snapshot ScheduleSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	restored, err := s.lr.RestoreMany(ctx, snapshot.PostLogs)
	if err != nil {
		return nil, err
	}

	return &ImportSummary{
		Creators: len(snapshot.Creators),
		Accounts: len(snapshot.Accounts),
		PostLogs: len(snapshot.PostLogs),
		Restored: restored,
	}, nil
}
