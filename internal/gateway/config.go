package gateway

import (
	"errors"
	"fmt"

	"mpgspay/internal/domain"
)

var ErrEndpointNotConfigured = errors.New("api endpoint not configured")

type Mode string

const (
	ModeLive Mode = "live"
	ModeTest Mode = "test"
)

// Credentials is one variant of the gateway credential set. Which variant is
// authoritative is decided by the configured mode alone.
type Credentials struct {
	MerchantID    string
	APIPassword   string
	WebhookSecret string
}

// Title is a per-language call-to-action label with a method default used for
// unset or blank languages.
type Title struct {
	Configured map[string]string
	Default    string
}

func (t Title) Resolve(lang string) string {
	if v, ok := t.Configured[lang]; ok && v != "" {
		return v
	}
	return t.Default
}

type HostedCheckoutConfig struct {
	Active      bool
	Title       Title
	Theme       string
	ShowBilling string
	ShowEmail   string
}

type HostedSessionConfig struct {
	Active bool
	Title  Title
}

// Config is the typed view of the persisted gateway settings, loaded fresh on
// every request that needs it.
type Config struct {
	Active       bool
	Mode         Mode
	APIURL       string
	APIURLCustom string
	Live         Credentials
	Test         Credentials

	HostedCheckout HostedCheckoutConfig
	HostedSession  HostedSessionConfig
}

// SettingStore is the slice of the settings repository the loader needs.
type SettingStore interface {
	Get(key string) (string, error)
	GetLangMap(key string) (map[string]string, error)
}

// Load reads the persisted settings into a Config. Display policies are
// validated here rather than on every read.
func Load(store SettingStore) (*Config, error) {
	get := func(key string) (string, error) { return store.Get(key) }

	cfg := &Config{}

	active, err := get(domain.KeyActive)
	if err != nil {
		return nil, err
	}
	cfg.Active = active == "1"

	mode, err := get(domain.KeyMode)
	if err != nil {
		return nil, err
	}
	if mode == string(ModeLive) {
		cfg.Mode = ModeLive
	} else {
		cfg.Mode = ModeTest
	}

	if cfg.APIURL, err = get(domain.KeyAPIURL); err != nil {
		return nil, err
	}
	if cfg.APIURLCustom, err = get(domain.KeyAPIURLCustom); err != nil {
		return nil, err
	}

	loadCreds := func(prefix string) (Credentials, error) {
		var c Credentials
		var e error
		if c.MerchantID, e = get(prefix + domain.KeyMerchantID); e != nil {
			return c, e
		}
		if c.APIPassword, e = get(prefix + domain.KeyAPIPassword); e != nil {
			return c, e
		}
		if c.WebhookSecret, e = get(prefix + domain.KeyWebhookSecret); e != nil {
			return c, e
		}
		return c, nil
	}
	if cfg.Live, err = loadCreds(""); err != nil {
		return nil, err
	}
	if cfg.Test, err = loadCreds(domain.TestPrefix); err != nil {
		return nil, err
	}

	hcActive, err := get(domain.KeyHCActive)
	if err != nil {
		return nil, err
	}
	hcTitles, err := store.GetLangMap(domain.KeyHCTitle)
	if err != nil {
		return nil, err
	}
	theme, err := get(domain.KeyHCTheme)
	if err != nil {
		return nil, err
	}
	showBilling, err := get(domain.KeyHCShowBilling)
	if err != nil {
		return nil, err
	}
	showEmail, err := get(domain.KeyHCShowEmail)
	if err != nil {
		return nil, err
	}
	cfg.HostedCheckout = HostedCheckoutConfig{
		Active:      hcActive == "1",
		Title:       Title{Configured: hcTitles, Default: domain.DefaultHCTitle},
		Theme:       theme,
		ShowBilling: normalizeDisplay(showBilling),
		ShowEmail:   normalizeDisplay(showEmail),
	}

	hsActive, err := get(domain.KeyHSActive)
	if err != nil {
		return nil, err
	}
	hsTitles, err := store.GetLangMap(domain.KeyHSTitle)
	if err != nil {
		return nil, err
	}
	cfg.HostedSession = HostedSessionConfig{
		Active: hsActive == "1",
		Title:  Title{Configured: hsTitles, Default: domain.DefaultHSTitle},
	}

	return cfg, nil
}

func normalizeDisplay(v string) string {
	switch v {
	case domain.DisplayHide, domain.DisplayMandatory, domain.DisplayOptional:
		return v
	}
	return domain.DisplayHide
}

func isPresetEndpoint(host string) bool {
	for _, e := range domain.APIEndpoints {
		if host == e {
			return true
		}
	}
	return false
}

// ResolveEndpoint returns the preset endpoint when one of the allow-listed
// hosts is configured, otherwise the custom endpoint. No network validation
// happens here; any non-empty custom value is accepted.
func (c *Config) ResolveEndpoint() (string, error) {
	if c.APIURL != "" && isPresetEndpoint(c.APIURL) {
		return c.APIURL, nil
	}
	if c.APIURLCustom != "" {
		return c.APIURLCustom, nil
	}
	return "", ErrEndpointNotConfigured
}

// Credentials returns the credential set for the configured mode.
func (c *Config) Credentials() Credentials {
	if c.Mode == ModeLive {
		return c.Live
	}
	return c.Test
}

// Credential resolves a logical credential field for the configured mode.
func (c *Config) Credential(field string) string {
	creds := c.Credentials()
	switch field {
	case domain.KeyMerchantID:
		return creds.MerchantID
	case domain.KeyAPIPassword:
		return creds.APIPassword
	case domain.KeyWebhookSecret:
		return creds.WebhookSecret
	}
	return ""
}

// CheckoutScriptURL composes the hosted checkout.js component URL.
func (c *Config) CheckoutScriptURL(apiVersion string) (string, error) {
	endpoint, err := c.ResolveEndpoint()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s/checkout/version/%s/checkout.js", endpoint, apiVersion), nil
}
