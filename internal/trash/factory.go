package trash

import (
	"fmt"

	"iv-go/internal/config"
	"iv-go/internal/iv"
)

// NewTrashFromConfig creates a Trash implementation based on the trash config type.
func NewTrashFromConfig(cfg config.TrashConfig, clock iv.Clock, ids iv.IDGenerator) (iv.Trash, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryTrash(clock, ids), nil
	case "filesystem":
		if cfg.Root == "" {
			return nil, fmt.Errorf("filesystem trash requires root to be set")
		}
		return NewFilesystemTrash(cfg.Root, clock, ids)
	default:
		return nil, fmt.Errorf("unknown trash type: %s", cfg.Type)
	}
}
