package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() SettingsForm {
	return SettingsForm{
		Active:          true,
		Mode:            "live",
		APIURL:          "eu-gateway.mastercard.com",
		MerchantID:      "MID",
		APIPassword:     "pw",
		WebhookSecret:   "secret",
		TestMerchantID:  "TESTMID",
		TestAPIPassword: "testpw",
	}
}

func TestSettingsFormValidate(t *testing.T) {
	t.Run("valid live form", func(t *testing.T) {
		f := validForm()
		assert.Empty(t, f.Validate())
	})

	t.Run("live mode collects every missing credential", func(t *testing.T) {
		f := validForm()
		f.MerchantID = ""
		f.APIPassword = ""
		f.WebhookSecret = ""
		errs := f.Validate()
		assert.Len(t, errs, 3)
		assert.Contains(t, errs, "Merchant ID is required.")
		assert.Contains(t, errs, "API password is required.")
		assert.Contains(t, errs, "Webhook Secret is required.")
	})

	t.Run("test mode does not require the webhook secret", func(t *testing.T) {
		f := SettingsForm{
			Mode:            "test",
			APIURL:          "mtf.gateway.mastercard.com",
			TestMerchantID:  "TESTMID",
			TestAPIPassword: "testpw",
		}
		assert.Empty(t, f.Validate())
	})

	t.Run("test mode requires test credentials", func(t *testing.T) {
		f := SettingsForm{Mode: "test", APIURL: "mtf.gateway.mastercard.com"}
		errs := f.Validate()
		assert.Contains(t, errs, "Test Merchant ID is required.")
		assert.Contains(t, errs, "Test API password is required.")
	})

	t.Run("endpoint required when both fields empty", func(t *testing.T) {
		f := validForm()
		f.APIURL = ""
		f.APIURLCustom = ""
		assert.Contains(t, f.Validate(), "Custom API Endpoint is required.")
	})

	t.Run("custom endpoint satisfies the requirement", func(t *testing.T) {
		f := validForm()
		f.APIURL = ""
		f.APIURLCustom = "my.gateway.example"
		assert.Empty(t, f.Validate())
	})

	t.Run("preset must come from the allow-list", func(t *testing.T) {
		f := validForm()
		f.APIURL = "evil.example.com"
		assert.Contains(t, f.Validate(), "Unknown API Endpoint.")
	})

	t.Run("display policies validated", func(t *testing.T) {
		f := validForm()
		f.HCShowBilling = "SOMETIMES"
		assert.Contains(t, f.Validate(), "Billing Address display must be HIDE, MANDATORY or OPTIONAL.")
	})

	t.Run("mode must be live or test", func(t *testing.T) {
		f := validForm()
		f.Mode = "staging"
		assert.Contains(t, f.Validate(), "Mode must be either live or test.")
	})
}

type recordingWriter struct {
	flat   map[string]string
	byLang map[string]map[string]string
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{flat: map[string]string{}, byLang: map[string]map[string]string{}}
}

func (w *recordingWriter) Set(key, value string) error {
	w.flat[key] = value
	return nil
}

func (w *recordingWriter) SetLang(key, lang, value string) error {
	if w.byLang[key] == nil {
		w.byLang[key] = map[string]string{}
	}
	w.byLang[key][lang] = value
	return nil
}

func TestSettingsFormSave(t *testing.T) {
	f := validForm()
	f.HCActive = true
	f.HCTitle = map[string]string{"en": "Card payment", "fr": "Paiement par carte"}
	f.HCShowBilling = "OPTIONAL"

	w := newRecordingWriter()
	assert.NoError(t, f.Save(w))

	assert.Equal(t, "1", w.flat["mpgs_active"])
	assert.Equal(t, "live", w.flat["mpgs_mode"])
	assert.Equal(t, "MID", w.flat["mpgs_merchant_id"])
	assert.Equal(t, "TESTMID", w.flat["test_mpgs_merchant_id"])
	assert.Equal(t, "1", w.flat["mpgs_hc_active"])
	assert.Equal(t, "OPTIONAL", w.flat["mpgs_hc_show_billing"])
	assert.Equal(t, "Paiement par carte", w.byLang["mpgs_hc_title"]["fr"])
}
