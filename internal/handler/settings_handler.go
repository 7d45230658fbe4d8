package handler

import (
	"net/http"

	"mpgspay/internal/gateway"
	"mpgspay/internal/repository"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settings *repository.SettingRepository
}

func NewSettingsHandler(settings *repository.SettingRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get returns the current gateway configuration. Secrets are included; the
// route sits behind admin auth.
func (h *SettingsHandler) Get(c *gin.Context) {
	cfg, err := gateway.Load(h.settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"active":         cfg.Active,
		"mode":           cfg.Mode,
		"api_url":        cfg.APIURL,
		"api_url_custom": cfg.APIURLCustom,

		"merchant_id":    cfg.Live.MerchantID,
		"api_password":   cfg.Live.APIPassword,
		"webhook_secret": cfg.Live.WebhookSecret,

		"test_merchant_id":    cfg.Test.MerchantID,
		"test_api_password":   cfg.Test.APIPassword,
		"test_webhook_secret": cfg.Test.WebhookSecret,

		"hc_active":       cfg.HostedCheckout.Active,
		"hc_title":        cfg.HostedCheckout.Title.Configured,
		"hc_theme":        cfg.HostedCheckout.Theme,
		"hc_show_billing": cfg.HostedCheckout.ShowBilling,
		"hc_show_email":   cfg.HostedCheckout.ShowEmail,

		"hs_active": cfg.HostedSession.Active,
		"hs_title":  cfg.HostedSession.Title.Configured,
	})
}

// Update validates and saves the settings form. Validation problems are
// collected and reported together.
func (h *SettingsHandler) Update(c *gin.Context) {
	var form gateway.SettingsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}
	if err := form.Save(h.settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
}
