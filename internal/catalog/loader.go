package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/vytor/speakflash/internal/models"
)

var validate = validator.New()

type file struct {
	Items []models.LearnableItem `toml:"item"`
}

// Load reads a TOML catalog from path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a TOML catalog made of [[item]] tables.
func Decode(r io.Reader) (*Catalog, error) {
	var doc file
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, errors.New("catalog has no items")
	}

	var errs []error
	for i, item := range doc.Items {
		if item.Difficulty == "" {
			doc.Items[i].Difficulty = models.DifficultyMedium
			item.Difficulty = models.DifficultyMedium
		}
		if err := validate.Struct(item); err != nil {
			errs = append(errs, fmt.Errorf("item %d (id=%d): %w", i, item.ID, err))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return New(doc.Items)
}
