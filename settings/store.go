package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileSettings maps the TOML file. Missing keys stay nil and fall back to
// defaults.
type fileSettings struct {
	Typing typingSection `toml:"typing"`
	Hotkey hotkeySection `toml:"hotkey"`
}

type typingSection struct {
	Speed      *int     `toml:"speed"`
	Variance   *float64 `toml:"variance"`
	TypoRate   *float64 `toml:"typo-rate"`
	MinDelayMs *float64 `toml:"min-delay-ms"`
	MaxDelayMs *float64 `toml:"max-delay-ms"`
}

type hotkeySection struct {
	Activate *string `toml:"activate"`
	Cancel   *string `toml:"cancel"`
}

// Store persists Settings as a TOML file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the settings file. A missing file yields Default().
func (s *Store) Load() (Settings, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to stat settings: %w", err)
	}
	var fs fileSettings
	if _, err := toml.DecodeFile(s.path, &fs); err != nil {
		return Default(), fmt.Errorf("failed to decode settings: %w", err)
	}
	return fs.settings(), nil
}

func (fs fileSettings) settings() Settings {
	p := DefaultParams()
	if v := fs.Typing.Speed; v != nil {
		p.Speed = *v
	}
	if v := fs.Typing.Variance; v != nil {
		p.Variance = *v
	}
	if v := fs.Typing.TypoRate; v != nil {
		p.TypoRate = *v
	}
	if v := fs.Typing.MinDelayMs; v != nil {
		p.MinDelayMs = *v
	}
	if v := fs.Typing.MaxDelayMs; v != nil {
		p.MaxDelayMs = *v
	}
	if v := fs.Hotkey.Activate; v != nil {
		p.ActivateChord = *v
	}
	if v := fs.Hotkey.Cancel; v != nil {
		p.CancelChord = *v
	}
	return New(p)
}

func toFile(st Settings) fileSettings {
	p := st.Params()
	return fileSettings{
		Typing: typingSection{
			Speed:      &p.Speed,
			Variance:   &p.Variance,
			TypoRate:   &p.TypoRate,
			MinDelayMs: &p.MinDelayMs,
			MaxDelayMs: &p.MaxDelayMs,
		},
		Hotkey: hotkeySection{
			Activate: &p.ActivateChord,
			Cancel:   &p.CancelChord,
		},
	}
}

// Encode renders st as TOML.
func Encode(st Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toFile(st)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes st atomically: a temp file in the same directory is renamed
// over the target.
func (s *Store) Save(st Settings) error {
	data, err := Encode(st)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

// Reset saves and returns the defaults.
func (s *Store) Reset() (Settings, error) {
	st := Default()
	return st, s.Save(st)
}
