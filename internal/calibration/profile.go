// Package calibration measures the multiplication crossover of the kernel on
// the current machine and persists it as a JSON profile that later runs
// load instead of guessing.
package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	apperrors "github.com/darksharpness/int2048/internal/errors"
)

// CalibrationProfile stores the results of a calibration run together with
// the hardware context needed to validate them later.
type CalibrationProfile struct {
	// Hardware identification
	CPUModel  string `json:"cpu_model"`
	NumCPU    int    `json:"num_cpu"`
	GOARCH    string `json:"goarch"`
	GOOS      string `json:"goos"`
	GoVersion string `json:"go_version"`
	WordSize  int    `json:"word_size"`

	// Calibrated crossovers, in limbs.
	BruteThreshold int `json:"brute_threshold"`
	DivThreshold   int `json:"div_threshold"`

	CalibratedAt    time.Time `json:"calibrated_at"`
	CalibrationTime string    `json:"calibration_time"`

	ProfileVersion int `json:"profile_version"`
}

const (
	// CurrentProfileVersion is the current version of the profile format.
	CurrentProfileVersion = 1

	// DefaultProfileFileName is the default name for the calibration profile file.
	DefaultProfileFileName = ".int2048_calibration.json"
)

// GetDefaultProfilePath returns the profile path in the user's home
// directory, or in the current directory when there is none.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

func wordSize() int { return 32 << (^uint(0) >> 63) }

// NewProfile creates a profile stamped with the current hardware.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		CPUModel:       fmt.Sprintf("%s-%d-cores", runtime.GOARCH, runtime.NumCPU()),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       wordSize(),
		CalibratedAt:   time.Now(),
		ProfileVersion: CurrentProfileVersion,
	}
}

// LoadProfile reads a profile from path, or from the default path when path
// is empty.
func LoadProfile(path string) (*CalibrationProfile, error) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to read profile")
	}
	var profile CalibrationProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, apperrors.WrapError(err, "failed to parse profile")
	}
	return &profile, nil
}

// SaveProfile writes the profile to path, or to the default path when path
// is empty.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, "failed to marshal profile")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return apperrors.WrapError(err, "failed to write profile")
	}
	return nil
}

// IsValid reports whether the profile was produced by this profile version
// on hardware matching the current machine, with usable thresholds.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == wordSize() &&
		p.BruteThreshold >= 2 && p.DivThreshold >= 2
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String returns a human-readable summary of the profile.
func (p *CalibrationProfile) String() string {
	if p == nil {
		return "<nil profile>"
	}
	return fmt.Sprintf("CalibrationProfile{CPU: %s, Brute: %d limbs, Div: %d limbs, Calibrated: %s}",
		p.CPUModel, p.BruteThreshold, p.DivThreshold, p.CalibratedAt.Format(time.RFC3339))
}

// LoadOrCreateProfile loads the profile at path. It returns a fresh profile
// and false when the file is missing, unreadable or invalid here.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	profile, err := LoadProfile(path)
	if err != nil || !profile.IsValid() {
		return NewProfile(), false
	}
	return profile, true
}

// ProfileExists reports whether a profile file exists at path.
func ProfileExists(path string) bool {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	_, err := os.Stat(path)
	return err == nil
}
