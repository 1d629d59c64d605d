// Package embed renders the clinic-location widget (title image, map image,
// collapsible clinic-details list) into a host HTML document.
package embed

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidArgument is returned for construction-time validation failures.
// It is the only hard error the embedder surfaces; everything after
// construction degrades and logs instead.
var ErrInvalidArgument = errors.New("invalid argument")

// ClinicType selects which clinic group's map and details are embedded.
type ClinicType string

const (
	ClinicTypeA ClinicType = "A"
	ClinicTypeB ClinicType = "B"
	ClinicTypeC ClinicType = "C"
)

// ParseClinicType converts a string into a ClinicType.
func ParseClinicType(s string) (ClinicType, error) {
	switch t := ClinicType(strings.ToUpper(strings.TrimSpace(s))); t {
	case ClinicTypeA, ClinicTypeB, ClinicTypeC:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown clinic type %q", ErrInvalidArgument, s)
}

// Default widget colors, applied when a color is missing or malformed.
const (
	DefaultMainColor = "000"
	DefaultSubColor  = "fff"
)

var hexColorPattern = regexp.MustCompile(`^(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Colors holds the widget color configuration as 3- or 6-digit hex strings
// without a leading "#". Invalid values are silently replaced by defaults,
// never rejected.
type Colors struct {
	Main string
	Sub  string
}

// normalized returns the colors with defaults applied for missing or
// malformed values.
func (c Colors) normalized() Colors {
	if !hexColorPattern.MatchString(c.Main) {
		c.Main = DefaultMainColor
	}
	if !hexColorPattern.MatchString(c.Sub) {
		c.Sub = DefaultSubColor
	}
	return c
}

// Config describes one embed instance. Immutable once constructed.
type Config struct {
	// ParentSelector is an ID-style selector ("#...") naming the host
	// element the widget renders under.
	ParentSelector string
	ClinicType     ClinicType
	Colors         Colors
}

func (c Config) validate() error {
	if strings.TrimSpace(c.ParentSelector) == "" {
		return fmt.Errorf("%w: parent selector is required", ErrInvalidArgument)
	}
	if !strings.HasPrefix(c.ParentSelector, "#") {
		return fmt.Errorf("%w: parent selector %q must be an ID selector", ErrInvalidArgument, c.ParentSelector)
	}
	if len(c.ParentSelector) == 1 {
		return fmt.Errorf("%w: parent selector %q has no ID", ErrInvalidArgument, c.ParentSelector)
	}
	if c.ClinicType == "" {
		return fmt.Errorf("%w: clinic type is required", ErrInvalidArgument)
	}
	switch c.ClinicType {
	case ClinicTypeA, ClinicTypeB, ClinicTypeC:
	default:
		return fmt.Errorf("%w: unknown clinic type %q", ErrInvalidArgument, c.ClinicType)
	}
	return nil
}

// parentID returns the selector with the leading "#" stripped.
func (c Config) parentID() string {
	return strings.TrimPrefix(c.ParentSelector, "#")
}
