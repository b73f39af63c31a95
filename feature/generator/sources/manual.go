package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// KaizeOverride is a hand-curated Kaize link for one anchor title.
type KaizeOverride struct {
	Kaize   string `json:"kaize"`
	KaizeID *int   `json:"kaize_id"`
}

// NautiljonOverride is a hand-curated Nautiljon link for one anchor title.
type NautiljonOverride struct {
	Nautiljon   string `json:"nautiljon"`
	NautiljonID *int   `json:"nautiljon_id"`
}

// LoadKaizeManual reads the Kaize manual-override table. A missing file is
// an empty table, not an error; the curated files grow out of the unlinked
// residue over time.
func LoadKaizeManual(rawDir string) (map[string]KaizeOverride, error) {
	out := map[string]KaizeOverride{}
	err := loadManual(filepath.Join(rawDir, "kaize_manual.json"), &out)
	return out, err
}

// LoadNautiljonManual reads the Nautiljon manual-override table.
func LoadNautiljonManual(rawDir string) (map[string]NautiljonOverride, error) {
	out := map[string]NautiljonOverride{}
	err := loadManual(filepath.Join(rawDir, "nautiljon_manual.json"), &out)
	return out, err
}

// LoadOtakOtakuManual reads the Otak Otaku manual-override table
// (anchor title → Otak Otaku ID).
func LoadOtakOtakuManual(rawDir string) (map[string]int, error) {
	out := map[string]int{}
	err := loadManual(filepath.Join(rawDir, "otakotaku_manual.json"), &out)
	return out, err
}

// LoadSilverYashaManual reads the Silver Yasha manual-override table
// (anchor title → Silver Yasha ID).
func LoadSilverYashaManual(rawDir string) (map[string]int, error) {
	out := map[string]int{}
	err := loadManual(filepath.Join(rawDir, "silveryasha_manual.json"), &out)
	return out, err
}

func loadManual(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
