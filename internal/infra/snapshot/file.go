package snapshot

import (
	"context"
	"encoding/json"
	"os"

	repo "storefront/internal/repository"

	"github.com/pkg/errors"
)

// FileSource はJSONファイルからカタログを読む
// 形式: {"categories":[...],"products":[...]}
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) ReadSnapshot(ctx context.Context) (repo.CatalogSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return repo.CatalogSnapshot{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return repo.CatalogSnapshot{}, errors.Wrapf(err, "open catalog snapshot %s", s.path)
	}
	defer f.Close()

	var snap repo.CatalogSnapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return repo.CatalogSnapshot{}, errors.Wrapf(err, "decode catalog snapshot %s", s.path)
	}
	return snap, nil
}
