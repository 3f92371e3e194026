package settings

import (
	"os"
	"sync/atomic"

	"github.com/oomph-ac/ascent/check"
	"github.com/oomph-ac/ascent/oerror"
	"github.com/pelletier/go-toml"
)

// Settings contains all settings that can be configured for each check.
type Settings struct {
	// Checks holds the escalation settings of every check, keyed by check key.
	Checks map[string]Basics `toml:"checks"`
	Flight Flight            `toml:"flight"`
}

// Basics are the escalation settings for a check.
type Basics struct {
	// Enabled is whether the check should run at all.
	Enabled bool `toml:"enabled"`
	// CancelAt is the violation level at which the triggering action is cancelled.
	CancelAt int `toml:"cancel_at"`
	// BanAt is the violation level at which removal of the actor is scheduled.
	BanAt int `toml:"ban_at"`
	// NotifyEvery makes observers get notified on every Nth violation. 0 disables notifications.
	NotifyEvery int  `toml:"notify_every"`
	Cancellable bool `toml:"cancellable"`
	Bannable    bool `toml:"bannable"`
}

// Flight holds the tuned constants of the flight check.
type Flight struct {
	// AscendLadder is the maximum vertical speed while climbing up.
	AscendLadder float64 `toml:"ascend_ladder"`
	// DescendLadder is the maximum vertical speed while climbing down.
	DescendLadder float64 `toml:"descend_ladder"`
	// MaxJump is the maximum vertical speed of a single tick of a jump.
	MaxJump float64 `toml:"max_jump"`
	// AscendTime is the maximum amount of consecutive ascending ticks.
	AscendTime int `toml:"ascend_time"`
}

// DefaultSettings returns the default settings for all checks.
func DefaultSettings() Settings {
	s := Settings{Checks: make(map[string]Basics)}
	for _, d := range check.Descriptors() {
		s.Checks[d.Key] = Basics{CancelAt: 5, BanAt: 50, NotifyEvery: 5, Cancellable: true}
	}
	s.Checks[check.MustLookup(check.KindFlight).Key] = Basics{
		Enabled:     true,
		CancelAt:    3,
		BanAt:       40,
		NotifyEvery: 1,
		Cancellable: true,
		Bannable:    true,
	}

	s.Flight = Flight{
		AscendLadder:  0.118,
		DescendLadder: 0.151,
		MaxJump:       0.42,
		AscendTime:    7,
	}
	return s
}

// Basics returns the escalation settings of the check kind passed. An unknown kind returns zero
// settings, which never cancel, notify or ban.
func (s *Settings) Basics(k check.Kind) Basics {
	d, ok := check.Lookup(k)
	if !ok {
		return Basics{}
	}
	return s.Checks[d.Key]
}

// Validate returns an error if any registered check is missing its settings or any value is out of range.
func (s *Settings) Validate() error {
	for _, d := range check.Descriptors() {
		b, ok := s.Checks[d.Key]
		if !ok {
			return oerror.New("settings: missing section for check %s", d.Key)
		}
		if b.NotifyEvery < 0 {
			return oerror.New("settings: %s: notify_every must not be negative, got %d", d.Key, b.NotifyEvery)
		}
		if b.Cancellable && b.CancelAt < 1 {
			return oerror.New("settings: %s: cancel_at must be at least 1 for a cancellable check, got %d", d.Key, b.CancelAt)
		}
		if b.Bannable && b.BanAt < 1 {
			return oerror.New("settings: %s: ban_at must be at least 1 for a bannable check, got %d", d.Key, b.BanAt)
		}
	}
	for key := range s.Checks {
		if !knownKey(key) {
			return oerror.New("settings: unknown check %s", key)
		}
	}

	f := s.Flight
	if f.AscendLadder <= 0 || f.DescendLadder <= 0 || f.MaxJump <= 0 {
		return oerror.New("settings: flight speeds must be positive, got ascend=%v descend=%v jump=%v", f.AscendLadder, f.DescendLadder, f.MaxJump)
	}
	if f.AscendTime <= 0 {
		return oerror.New("settings: flight ascend_time must be positive, got %d", f.AscendTime)
	}
	return nil
}

func knownKey(key string) bool {
	for _, d := range check.Descriptors() {
		if d.Key == key {
			return true
		}
	}
	return false
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return oerror.New("settings file already exists")
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return oerror.New("failed encoding default settings: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return oerror.New("failed creating settings file: %v", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist
// or the settings in it are invalid.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, oerror.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, oerror.New("error reading settings: %v", err)
	}

	var s Settings
	if err = toml.Unmarshal(data, &s); err != nil {
		return Settings{}, oerror.New("error decoding settings: %v", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Holder holds the active Settings and allows them to be swapped while checks are running.
type Holder struct {
	v atomic.Pointer[Settings]
}

// NewHolder validates s and returns a Holder serving it.
func NewHolder(s Settings) (*Holder, error) {
	h := &Holder{}
	if err := h.Store(s); err != nil {
		return nil, err
	}
	return h, nil
}

// Load returns the active settings. The returned value must not be modified.
func (h *Holder) Load() *Settings {
	return h.v.Load()
}

// Store validates s and makes it the active settings. Invalid settings are rejected and the
// previous settings stay active.
func (h *Holder) Store(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	checks := make(map[string]Basics, len(s.Checks))
	for k, b := range s.Checks {
		checks[k] = b
	}
	s.Checks = checks
	h.v.Store(&s)
	return nil
}
