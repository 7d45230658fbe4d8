package gateway

import (
	"mpgspay/internal/domain"
)

// SettingsForm is the admin settings submission.
type SettingsForm struct {
	Active bool   `json:"active"`
	Mode   string `json:"mode"`

	APIURL       string `json:"api_url"`
	APIURLCustom string `json:"api_url_custom"`

	MerchantID    string `json:"merchant_id"`
	APIPassword   string `json:"api_password"`
	WebhookSecret string `json:"webhook_secret"`

	TestMerchantID    string `json:"test_merchant_id"`
	TestAPIPassword   string `json:"test_api_password"`
	TestWebhookSecret string `json:"test_webhook_secret"`

	HCActive      bool              `json:"hc_active"`
	HCTitle       map[string]string `json:"hc_title"`
	HCTheme       string            `json:"hc_theme"`
	HCShowBilling string            `json:"hc_show_billing"`
	HCShowEmail   string            `json:"hc_show_email"`

	HSActive bool              `json:"hs_active"`
	HSTitle  map[string]string `json:"hs_title"`
}

// Validate collects every problem with the submission instead of failing on
// the first one. An empty slice means the form can be saved.
func (f *SettingsForm) Validate() []string {
	var errs []string

	if f.Mode != string(ModeLive) && f.Mode != string(ModeTest) {
		errs = append(errs, "Mode must be either live or test.")
	}

	if f.APIURL == "" {
		if f.APIURLCustom == "" {
			errs = append(errs, "Custom API Endpoint is required.")
		}
	} else if !isPresetEndpoint(f.APIURL) {
		errs = append(errs, "Unknown API Endpoint.")
	}

	if f.Mode == string(ModeLive) {
		if f.MerchantID == "" {
			errs = append(errs, "Merchant ID is required.")
		}
		if f.APIPassword == "" {
			errs = append(errs, "API password is required.")
		}
		if f.WebhookSecret == "" {
			errs = append(errs, "Webhook Secret is required.")
		}
	} else {
		if f.TestMerchantID == "" {
			errs = append(errs, "Test Merchant ID is required.")
		}
		if f.TestAPIPassword == "" {
			errs = append(errs, "Test API password is required.")
		}
		// In test mode, the Secret is not required.
	}

	if f.HCShowBilling != "" && normalizeDisplay(f.HCShowBilling) != f.HCShowBilling {
		errs = append(errs, "Billing Address display must be HIDE, MANDATORY or OPTIONAL.")
	}
	if f.HCShowEmail != "" && normalizeDisplay(f.HCShowEmail) != f.HCShowEmail {
		errs = append(errs, "Email Address display must be HIDE, MANDATORY or OPTIONAL.")
	}

	return errs
}

// SettingWriter is the slice of the settings repository Save needs.
type SettingWriter interface {
	Set(key, value string) error
	SetLang(key, lang, value string) error
}

// Save persists a validated form back to the settings store.
func (f *SettingsForm) Save(store SettingWriter) error {
	boolVal := func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	}

	flat := map[string]string{
		domain.KeyActive:       boolVal(f.Active),
		domain.KeyMode:         f.Mode,
		domain.KeyAPIURL:       f.APIURL,
		domain.KeyAPIURLCustom: f.APIURLCustom,

		domain.KeyMerchantID:    f.MerchantID,
		domain.KeyAPIPassword:   f.APIPassword,
		domain.KeyWebhookSecret: f.WebhookSecret,

		domain.TestPrefix + domain.KeyMerchantID:    f.TestMerchantID,
		domain.TestPrefix + domain.KeyAPIPassword:   f.TestAPIPassword,
		domain.TestPrefix + domain.KeyWebhookSecret: f.TestWebhookSecret,

		domain.KeyHCActive:      boolVal(f.HCActive),
		domain.KeyHCTheme:       f.HCTheme,
		domain.KeyHCShowBilling: normalizeDisplay(f.HCShowBilling),
		domain.KeyHCShowEmail:   normalizeDisplay(f.HCShowEmail),

		domain.KeyHSActive: boolVal(f.HSActive),
	}
	for k, v := range flat {
		if err := store.Set(k, v); err != nil {
			return err
		}
	}

	for lang, v := range f.HCTitle {
		if err := store.SetLang(domain.KeyHCTitle, lang, v); err != nil {
			return err
		}
	}
	for lang, v := range f.HSTitle {
		if err := store.SetLang(domain.KeyHSTitle, lang, v); err != nil {
			return err
		}
	}
	return nil
}
