package main

import (
	"log/slog"

	"github.com/BruksfildServices01/agenda-marketplace/internal/config"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/payment"
)

// buildGateways registers every provider that has credentials. Webhooks are
// accepted from all of them; checkout goes through cfg.PaymentProvider.
func buildGateways(cfg *config.Config, logger *slog.Logger) (map[string]payment.Gateway, payment.Gateway) {
	gateways := make(map[string]payment.Gateway)

	if cfg.StripeSecretKey != "" {
		gateways[payment.ProviderStripe] = payment.NewStripeGateway(payment.StripeConfig{
			SecretKey:        cfg.StripeSecretKey,
			WebhookSecret:    cfg.StripeWebhookSecret,
			WebhookTolerance: cfg.StripeWebhookTolerance,
		})
	}

	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payment.NewMercadoPagoGateway(payment.MercadoPagoConfig{
			AccessToken:     cfg.MercadoPagoAccessToken,
			WebhookSecret:   cfg.MercadoPagoWebhookKey,
			NotificationURL: cfg.MercadoPagoNotifyURL,
		})
		if err != nil {
			logger.Warn("mercadopago disabled", "err", err)
		} else {
			gateways[payment.ProviderMercadoPago] = mp
		}
	}

	primary, ok := gateways[cfg.PaymentProvider]
	if !ok {
		logger.Warn("checkout disabled, payment provider not configured", "provider", cfg.PaymentProvider)
		return gateways, nil
	}
	return gateways, primary
}
