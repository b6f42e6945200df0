package storage

import (
	"context"
	"fmt"
	"sync"
)

var (
	mu    sync.Mutex
	disks = map[string]Disk{}
)

// Open returns the named disk, building it from config on first use.
func Open(ctx context.Context, name string) (Disk, error) {
	mu.Lock()
	defer mu.Unlock()

	if d, ok := disks[name]; ok {
		return d, nil
	}

	var (
		d   Disk
		err error
	)
	switch name {
	case "local":
		d = NewLocalFromConfig()
	case "s3":
		d, err = NewS3FromConfig(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDisk, name)
	}
	if err != nil {
		return nil, err
	}
	disks[name] = d
	return d, nil
}

// Register plugs a disk in under name, replacing any existing one.
func Register(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}
