package save

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/improbability/internal/economy"
)

// saveFileExt is the extension of a save file
const saveFileExt = ".txt"

// FileConfig holds configuration for the file save repository
type FileConfig struct {
	// Dir is the directory save files are written to, created if missing
	Dir string
}

// fileRepository implements the Repository interface with one file per player
type fileRepository struct {
	dir string
}

// NewFile creates a save repository storing each record in <dir>/<player>.txt
func NewFile(cfg *FileConfig) (*fileRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Dir == "" {
		return nil, errors.New("save directory cannot be empty")
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}

	return &fileRepository{
		dir: cfg.Dir,
	}, nil
}

func (r *fileRepository) path(playerID string) string {
	return filepath.Join(r.dir, playerID+saveFileExt)
}

// SaveEconomy writes the save record, replacing the previous file atomically
func (r *fileRepository) SaveEconomy(ctx context.Context, input *SaveEconomyInput) error {
	if input == nil || input.Economy == nil {
		return errors.New("input and economy cannot be nil")
	}
	if err := validatePlayerID(input.PlayerID); err != nil {
		return err
	}
	if err := economy.ValidatePlayerName(input.Economy.PlayerName); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, input.PlayerID+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create save file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(input.Economy.Serialize() + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path(input.PlayerID)); err != nil {
		return fmt.Errorf("failed to save economy: %w", err)
	}

	return nil
}

// LoadEconomy reads and parses the player's save file
func (r *fileRepository) LoadEconomy(ctx context.Context, input *LoadEconomyInput) (*economy.Economy, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if err := validatePlayerID(input.PlayerID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path(input.PlayerID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSaveNotFound
		}
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	econ, err := economy.Deserialize(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load save for %s: %w", input.PlayerID, err)
	}

	return econ, nil
}

// DeleteSave removes the player's save file
func (r *fileRepository) DeleteSave(ctx context.Context, input *DeleteSaveInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validatePlayerID(input.PlayerID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(r.path(input.PlayerID)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrSaveNotFound
		}
		return fmt.Errorf("failed to delete save file: %w", err)
	}

	return nil
}
