package domain

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Shop", "shop"},
		{"diacritics", "Café Olé", "cafe-ole"},
		{"punctuation", "Bob's Burgers!", "bobs-burgers"},
		{"whitespace collapsed", "  The   Rolling    Bean ", "the-rolling-bean"},
		{"underscores and dashes", "night_owl --- ramen", "night-owl-ramen"},
		{"digits kept", "Studio 54", "studio-54"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugPattern(t *testing.T) {
	pattern, err := regexp.Compile("(?i)" + SlugPattern("shop"))
	require.NoError(t, err)

	assert.True(t, pattern.MatchString("shop"))
	assert.True(t, pattern.MatchString("Shop"))
	assert.True(t, pattern.MatchString("shop-2"))
	assert.True(t, pattern.MatchString("shop-10"))
	assert.False(t, pattern.MatchString("shopping"))
	assert.False(t, pattern.MatchString("shop-2-extra"))
	assert.False(t, pattern.MatchString("my-shop"))
}

func TestUniqueSlug(t *testing.T) {
	counterFor := func(slugs ...string) SlugCounter {
		return func(_ context.Context, pattern string) (int64, error) {
			re := regexp.MustCompile("(?i)" + pattern)
			var n int64
			for _, slug := range slugs {
				if re.MatchString(slug) {
					n++
				}
			}
			return n, nil
		}
	}

	t.Run("no collision keeps base", func(t *testing.T) {
		slug, err := UniqueSlug(context.Background(), "Shop", counterFor())
		require.NoError(t, err)
		assert.Equal(t, "shop", slug)
	})

	t.Run("suffix derives from match count", func(t *testing.T) {
		slug, err := UniqueSlug(context.Background(), "Shop", counterFor("shop", "shop-2"))
		require.NoError(t, err)
		assert.Equal(t, "shop-3", slug)
	})

	t.Run("count lags maximum after a gap", func(t *testing.T) {
		// shop-1 missing: three matches still produce shop-4, not a
		// reused shop-1. Documented count-based behaviour.
		slug, err := UniqueSlug(context.Background(), "Shop", counterFor("shop", "shop-2", "shop-3"))
		require.NoError(t, err)
		assert.Equal(t, "shop-4", slug)
	})

	t.Run("unrelated slugs are ignored", func(t *testing.T) {
		slug, err := UniqueSlug(context.Background(), "Shop", counterFor("shopping", "my-shop"))
		require.NoError(t, err)
		assert.Equal(t, "shop", slug)
	})
}
