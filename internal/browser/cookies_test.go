package browser

import (
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieRoundTripRestoresFields(t *testing.T) {
	saved := []playwright.Cookie{
		{
			Name:     "session",
			Value:    "abc123",
			Domain:   ".simplify.jobs",
			Path:     "/",
			Expires:  1893456000,
			HttpOnly: true,
			Secure:   true,
			SameSite: playwright.SameSiteAttributeLax,
		},
		{
			//session cookie: no expiry, restored without one
			Name:    "csrf",
			Value:   "tok",
			Domain:  "simplify.jobs",
			Path:    "/auth",
			Expires: -1,
		},
		{
			Name:     "prefs",
			Value:    "dark",
			Domain:   ".simplify.jobs",
			Path:     "/",
			Expires:  1893456000,
			SameSite: playwright.SameSiteAttributeStrict,
		},
		{
			Name:     "tracking",
			Value:    "x",
			Domain:   ".simplify.jobs",
			Path:     "/",
			Expires:  1893456000,
			Secure:   true,
			SameSite: playwright.SameSiteAttributeNone,
		},
	}

	path := filepath.Join(t.TempDir(), "cookies", "cookies-simplify.json")
	require.NoError(t, SaveCookies(path, saved))

	restored, err := LoadCookies(path)
	require.NoError(t, err)
	require.Len(t, restored, len(saved))

	for i, rc := range restored {
		sc := saved[i]
		assert.Equal(t, sc.Name, rc.Name)
		assert.Equal(t, sc.Value, rc.Value)
		require.NotNil(t, rc.Domain)
		assert.Equal(t, sc.Domain, *rc.Domain)
		require.NotNil(t, rc.Path)
		assert.Equal(t, sc.Path, *rc.Path)
	}

	persistent := restored[0]
	require.NotNil(t, persistent.Expires)
	assert.Equal(t, saved[0].Expires, *persistent.Expires)
	require.NotNil(t, persistent.HttpOnly)
	assert.True(t, *persistent.HttpOnly)
	require.NotNil(t, persistent.Secure)
	assert.True(t, *persistent.Secure)
	require.NotNil(t, persistent.SameSite)
	assert.Equal(t, *playwright.SameSiteAttributeLax, *persistent.SameSite)

	ephemeral := restored[1]
	assert.Nil(t, ephemeral.Expires, "session cookie must not come back with an expiry")
	assert.Nil(t, ephemeral.HttpOnly)
	assert.Nil(t, ephemeral.Secure)
	assert.Nil(t, ephemeral.SameSite)

	require.NotNil(t, restored[2].SameSite)
	assert.Equal(t, *playwright.SameSiteAttributeStrict, *restored[2].SameSite)
	require.NotNil(t, restored[3].SameSite)
	assert.Equal(t, *playwright.SameSiteAttributeNone, *restored[3].SameSite)
}

func TestToOptionalIgnoresUnknownSameSite(t *testing.T) {
	c := Cookie{
		Name:     "odd",
		Value:    "v",
		Domain:   ".simplify.jobs",
		Path:     "/",
		SameSite: "Sideways",
	}

	oc := c.toOptional()
	assert.Nil(t, oc.SameSite)
}

func TestLoadCookiesMissingFile(t *testing.T) {
	_, err := LoadCookies(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
