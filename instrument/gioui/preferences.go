package gioui

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gioui.org/unit"
	"github.com/pianola/pianola"
	"gopkg.in/yaml.v2"
)

type (
	Preferences struct {
		Window WindowPreferences
		Audio  AudioPreferences
	}

	WindowPreferences struct {
		Width     int
		Height    int
		Maximized bool `yaml:",omitempty"`
	}

	AudioPreferences struct {
		SampleRate     int
		BufferSize     time.Duration
		StartSuspended bool `yaml:",omitempty"`
	}
)

//go:embed preferences.yml
var defaultPreferencesYaml []byte

// configDirName is the directory under os.UserConfigDir holding the user's
// preferences.yml and keybindings.yml.
const configDirName = "pianola"

func loadDefaultPreferences() Preferences {
	var preferences Preferences
	if err := yaml.UnmarshalStrict(defaultPreferencesYaml, &preferences); err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	return preferences
}

// CustomConfigPath returns the path of a config file the user may write to
// override the defaults.
func CustomConfigPath(filename string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configDirName, filename), nil
}

// ReadCustomConfig reads a user config file. A missing file is not an error:
// exists is then false and data nil.
func ReadCustomConfig(path string) (data []byte, exists bool, err error) {
	data, err = os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}

// LoadPreferences returns the default preferences, overridden with the
// values of the yml file at path. If the file is malformed, the defaults are
// returned with a warning.
func LoadPreferences(path string) (Preferences, error) {
	preferences := loadDefaultPreferences()
	if path == "" {
		return preferences, nil
	}
	data, exists, err := ReadCustomConfig(path)
	if !exists {
		return preferences, nil
	}
	if err == nil {
		custom := preferences
		if err = yaml.UnmarshalStrict(data, &custom); err == nil {
			return custom, nil
		}
	}
	return preferences, fmt.Errorf("preferences in %s ignored: %w", path, err)
}

// MakePreferences loads the preferences from the user config directory.
func MakePreferences() (Preferences, error) {
	path, err := CustomConfigPath("preferences.yml")
	if err != nil {
		return loadDefaultPreferences(), nil
	}
	return LoadPreferences(path)
}

// LoadBindings returns the default key bindings, with the bindings of the
// yml file at path applied on top. If the file is malformed or the result
// binds a pitch twice, the defaults are returned with a warning.
func LoadBindings(path string) (pianola.Bindings, error) {
	defaults := pianola.DefaultBindings()
	if path == "" {
		return defaults, nil
	}
	data, exists, err := ReadCustomConfig(path)
	if !exists {
		return defaults, nil
	}
	if err == nil {
		var list []pianola.KeyBinding
		if list, err = pianola.ParseBindings(data); err == nil {
			bindings := defaults.Apply(list)
			if err = bindings.Validate(); err == nil {
				return bindings, nil
			}
		}
	}
	return defaults, fmt.Errorf("key bindings in %s ignored: %w", path, err)
}

// MakeBindings loads the key bindings from the user config directory.
func MakeBindings() (pianola.Bindings, error) {
	path, err := CustomConfigPath("keybindings.yml")
	if err != nil {
		return pianola.DefaultBindings(), nil
	}
	return LoadBindings(path)
}

func (p Preferences) WindowSize() (unit.Dp, unit.Dp) {
	return unit.Dp(p.Window.Width), unit.Dp(p.Window.Height)
}
