package objectkey

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "FC Example", want: "FC Example"},
		{name: "slash", in: "Red/White", want: "Red-White"},
		{name: "angle brackets", in: "<Tigers>", want: "-Tigers-"},
		{name: "surrounding space", in: "  Lions  ", want: "Lions"},
		{name: "leading dots", in: "..hidden", want: "hidden"},
		{name: "control chars", in: "Line\nBreak\t", want: "LineBreak"},
		{name: "emoji", in: "Stars ⚽🌟", want: "Stars ⚽-"},
		{name: "umlaut kept", in: "Müller", want: "Müller"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.in))
		})
	}
}

func TestValid_Truncates(t *testing.T) {
	key := Valid(strings.Repeat("ä", 300))
	assert.Equal(t, MaxLength, len([]rune(key)))
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"Lions": true, "Lions_1": true}
	key, err := Unique(context.Background(), "Lions", func(_ context.Context, k string) (bool, error) {
		return taken[k], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Lions_2", key)
}

func TestUnique_FreeBase(t *testing.T) {
	key, err := Unique(context.Background(), "Bears", func(_ context.Context, k string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Bears", key)
}

func TestUnique_PropagatesError(t *testing.T) {
	_, err := Unique(context.Background(), "Bears", func(_ context.Context, k string) (bool, error) {
		return false, errors.New("boom")
	})
	require.Error(t, err)
}
