package command

import (
	"fmt"
	"os"
	"sort"

	"github.com/pixil98/go-errors"
	"github.com/veildrift/go-incursion/internal/loader"
	"github.com/veildrift/go-incursion/internal/mission"
	"github.com/veildrift/go-incursion/internal/storage"
)

type StorageConfig struct {
	Rooms      AssetConfig[*loader.RoomSpec]      `json:"rooms"`
	Characters AssetConfig[*loader.CharacterSpec] `json:"characters"`
	Missions   AssetConfig[*mission.Spec]         `json:"missions"`

	// Mission selects which mission asset to run. Optional when the
	// missions directory holds exactly one.
	Mission string `json:"mission"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()
	el.Add(c.Rooms.Validate("rooms"))
	el.Add(c.Characters.Validate("characters"))
	el.Add(c.Missions.Validate("missions"))
	return el.Err()
}

// BuildWorld loads the room and character definitions and instantiates
// them. Definitions that fail to load or instantiate come back in the
// error; the world is still usable alongside it.
func (c *StorageConfig) BuildWorld() (*loader.Result, error) {
	el := errors.NewErrorList()

	rooms, err := c.Rooms.BuildFileStore()
	if err != nil {
		el.Add(fmt.Errorf("loading rooms: %w", err))
	}
	if rooms == nil {
		return nil, el.Err()
	}

	characters, err := c.Characters.BuildFileStore()
	if err != nil {
		el.Add(fmt.Errorf("loading characters: %w", err))
	}
	if characters == nil {
		return nil, el.Err()
	}

	res, err := loader.Build(rooms, characters)
	if err != nil {
		el.Add(fmt.Errorf("building world: %w", err))
	}

	return res, el.Err()
}

// BuildMission picks the configured mission spec from the missions store.
func (c *StorageConfig) BuildMission() (*mission.Spec, error) {
	store, err := c.Missions.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("loading missions: %w", err)
	}

	all := store.GetAll()
	if c.Mission != "" {
		spec := store.Get(storage.Identifier(c.Mission))
		if spec == nil {
			return nil, fmt.Errorf("mission %q not found", c.Mission)
		}
		return spec, nil
	}

	if len(all) != 1 {
		ids := make([]string, 0, len(all))
		for id := range all {
			ids = append(ids, string(id))
		}
		sort.Strings(ids)
		return nil, fmt.Errorf("mission must be set when %d missions are available %v", len(all), ids)
	}
	for _, spec := range all {
		return spec, nil
	}
	return nil, fmt.Errorf("no missions available")
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
