package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClinicType(t *testing.T) {
	tests := []struct {
		in      string
		want    ClinicType
		wantErr bool
	}{
		{"A", ClinicTypeA, false},
		{"b", ClinicTypeB, false},
		{" C ", ClinicTypeC, false},
		{"", "", true},
		{"D", "", true},
		{"AB", "", true},
	}
	for _, tt := range tests {
		got, err := ParseClinicType(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidArgument, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestColorsNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Colors
		want Colors
	}{
		{"empty falls back", Colors{}, Colors{Main: "000", Sub: "fff"}},
		{"valid three digit", Colors{Main: "1a2", Sub: "f00"}, Colors{Main: "1a2", Sub: "f00"}},
		{"valid six digit", Colors{Main: "1A2B3C", Sub: "ffffff"}, Colors{Main: "1A2B3C", Sub: "ffffff"}},
		{"invalid hex falls back", Colors{Main: "zzz", Sub: "12"}, Colors{Main: "000", Sub: "fff"}},
		{"leading hash is invalid", Colors{Main: "#fff", Sub: "fff"}, Colors{Main: "000", Sub: "fff"}},
		{"mixed validity", Colors{Main: "abc", Sub: "nope"}, Colors{Main: "abc", Sub: "fff"}},
		{"wrong lengths fall back", Colors{Main: "abcd", Sub: "abcdefg"}, Colors{Main: "000", Sub: "fff"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.normalized())
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := Config{ParentSelector: "#clinic", ClinicType: ClinicTypeB}
	assert.NoError(t, valid.validate())

	assert.Equal(t, "clinic", valid.parentID())
}
