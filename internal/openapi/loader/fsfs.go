package loader

import (
	"context"
	"errors"
	"io/fs"
)

func loadFromFS(ctx context.Context, filesystem fs.FS, name string, limit int64) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("openapi loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("openapi loader: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if info, err := fs.Stat(filesystem, name); err == nil {
		if err := checkSize(name, info.Size(), limit); err != nil {
			return nil, err
		}
	}
	return fs.ReadFile(filesystem, name)
}
