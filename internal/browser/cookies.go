package browser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
)

// Cookie is the on-disk shape of one browser cookie.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`
}

// LoadCookies reads a saved session cookie file. A missing file just means
// a fresh login.
func LoadCookies(path string) ([]playwright.OptionalCookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cookies []Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("parse cookie file %s: %w", path, err)
	}

	pwCookies := make([]playwright.OptionalCookie, len(cookies))
	for i, c := range cookies {
		pwCookies[i] = c.toOptional()
	}
	return pwCookies, nil
}

// SaveCookies persists the context's current cookies so the next run can
// skip the login form while the session is still valid.
func SaveCookies(path string, pwCookies []playwright.Cookie) error {
	cookies := make([]Cookie, len(pwCookies))
	for i, c := range pwCookies {
		cookies[i] = fromPlaywright(c)
	}

	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cookies: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cookie directory: %w", err)
	}
	//session cookies are credentials, keep them out of other users' reach
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write cookie file %s: %w", path, err)
	}
	return nil
}

func (c Cookie) toOptional() playwright.OptionalCookie {
	oc := playwright.OptionalCookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: playwright.String(c.Domain),
		Path:   playwright.String(c.Path),
	}

	if c.Expires > 0 {
		oc.Expires = playwright.Float(c.Expires)
	}
	if c.HTTPOnly {
		oc.HttpOnly = playwright.Bool(true)
	}
	if c.Secure {
		oc.Secure = playwright.Bool(true)
	}

	switch c.SameSite {
	case "Lax":
		oc.SameSite = playwright.SameSiteAttributeLax
	case "Strict":
		oc.SameSite = playwright.SameSiteAttributeStrict
	case "None":
		oc.SameSite = playwright.SameSiteAttributeNone
	}

	return oc
}

func fromPlaywright(c playwright.Cookie) Cookie {
	cookie := Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Expires:  c.Expires,
		HTTPOnly: c.HttpOnly,
		Secure:   c.Secure,
	}
	if c.SameSite != nil {
		cookie.SameSite = string(*c.SameSite)
	}
	return cookie
}
