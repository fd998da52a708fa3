package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-town/internal/storage"
	"github.com/pixil98/go-town/internal/town"
)

type StorageConfig struct {
	Maps AssetConfig[*town.TownMap] `json:"maps"`
}

func (c *StorageConfig) validate() error {
	return c.Maps.Validate("maps")
}

// LoadTownMap reads every map under the maps path and returns the one named id.
func (c *StorageConfig) LoadTownMap(id string) (*town.TownMap, error) {
	maps, err := c.Maps.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating map store: %w", err)
	}

	m := maps.Get(id)
	if m == nil {
		return nil, fmt.Errorf("town map %q not found in %s (have %v)", id, c.Maps.Path, maps.Ids())
	}
	return m, nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
