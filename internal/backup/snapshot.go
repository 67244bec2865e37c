// Package backup copies the live habit database into object storage.
package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"habit-tracker/internal/storage"
)

const (
	filePrefix = "habits-"
	fileSuffix = ".db"
)

// Config tells a Snapshotter where snapshots go.
type Config struct {
	Bucket    string
	KeyPrefix string
	TempDir   string
	Logger    *logrus.Logger
}

// Snapshotter writes consistent copies of the database with VACUUM INTO and
// uploads them.
type Snapshotter struct {
	db    *sql.DB
	store storage.Service
	cfg   Config
	now   func() time.Time
}

func NewSnapshotter(db *sql.DB, store storage.Service, cfg Config) *Snapshotter {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	return &Snapshotter{
		db:    db,
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Snapshot uploads a copy of the database and returns its location.
func (s *Snapshotter) Snapshot(ctx context.Context) (string, error) {
	if s.cfg.Bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}

	name := s.objectName()
	dir, err := os.MkdirTemp(s.cfg.TempDir, "habit-snapshot-")
	if err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	defer os.RemoveAll(dir)

	local := filepath.Join(dir, name)
	if err := s.WriteLocal(ctx, local); err != nil {
		return "", err
	}

	key := name
	if s.cfg.KeyPrefix != "" {
		key = path.Join(s.cfg.KeyPrefix, name)
	}
	location, err := s.store.UploadFile(ctx, local, s.cfg.Bucket, key)
	if err != nil {
		return "", err
	}
	s.cfg.Logger.WithField("location", location).Info("snapshot uploaded")
	return location, nil
}

// WriteLocal writes a compacted copy of the database to dest, which must not exist.
func (s *Snapshotter) WriteLocal(ctx context.Context, dest string) error {
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, dest); err != nil {
		return fmt.Errorf("vacuum into %s: %w", dest, err)
	}
	return nil
}

// List returns the snapshots stored under the key prefix.
func (s *Snapshotter) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	prefix := s.cfg.KeyPrefix
	if prefix != "" {
		prefix += "/"
	}
	objects, err := s.store.ListObjects(ctx, s.cfg.Bucket, prefix+filePrefix)
	if err != nil {
		return nil, err
	}

	snapshots := objects[:0]
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, fileSuffix) {
			snapshots = append(snapshots, obj)
		}
	}
	return snapshots, nil
}

func (s *Snapshotter) objectName() string {
	stamp := s.now().UTC().Format("20060102-150405")
	return fmt.Sprintf("%s%s-%s%s", filePrefix, stamp, uuid.NewString()[:8], fileSuffix)
}
