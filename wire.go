package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
)

// dependencies are the long lived collaborators of the HTTP server.
type dependencies struct {
	gate    *auth.Gate
	contact *services.ContactService
	images  *services.ImageIntake
	closers []func() error
}

func (d *dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			log.Warn().Err(err).Msg("error releasing resource")
		}
	}
}

func wire(ctx context.Context, c map[string]string, db database.Database) (*dependencies, error) {
	deps := &dependencies{}

	gate, err := newGate(c)
	if err != nil {
		return nil, err
	}
	deps.gate = gate
	unsubscribe := gate.Subscribe(func(ev auth.Event) {
		log.Info().
			Str("event", string(ev.Type)).
			Str("userId", ev.UserID.String()).
			Str("email", ev.Email).
			Msg("auth state changed")
	})
	deps.closers = append(deps.closers, func() error {
		unsubscribe()
		return nil
	})

	redisURL := config.GetString(c, "REDIS_URL", "")
	cooldown, closeCooldown, err := services.NewCooldownStore(redisURL, services.ContactCooldown)
	if err != nil {
		return nil, fmt.Errorf("cooldown store: %w", err)
	}
	deps.closers = append(deps.closers, closeCooldown)
	if redisURL != "" {
		log.Info().Msg("contact cooldown backed by redis")
	}

	deps.contact = services.NewContactService(db.ContactMessageRepo(), cooldown, newNotifier(c))

	images, err := newImageIntake(ctx, c)
	if err != nil {
		deps.close()
		return nil, err
	}
	deps.images = images

	return deps, nil
}

func newGate(c map[string]string) (*auth.Gate, error) {
	secret := config.GetString(c, "SUPABASE_JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	provider := auth.NewSupabaseProvider(
		config.GetString(c, "SUPABASE_PROJECT_REF", ""),
		config.GetString(c, "SUPABASE_ANON_KEY", ""),
		config.GetString(c, "SUPABASE_URL", ""),
	)
	return auth.NewGate(provider, auth.NewVerifier(secret)), nil
}

// newNotifier returns nil when no channel is configured.
func newNotifier(c map[string]string) services.Notifier {
	var channels []services.NamedNotifier

	if to := config.GetString(c, "NOTIFY_EMAIL", ""); to != "" {
		sender, err := services.NewEmailSender(
			config.GetString(c, "RESEND_API_KEY", ""),
			config.GetString(c, "RESEND_FROM_EMAIL", ""),
		)
		if err != nil {
			log.Warn().Err(err).Msg("email notifications disabled")
		} else {
			channels = append(channels, services.NamedNotifier{Name: "email", Notifier: services.NewEmailNotifier(sender, to)})
		}
	}

	if to := config.GetString(c, "NOTIFY_PHONE", ""); to != "" {
		sender, err := services.NewSMSSender(
			config.GetString(c, "TWILIO_ACCOUNT_SID", ""),
			config.GetString(c, "TWILIO_AUTH_TOKEN", ""),
			config.GetString(c, "TWILIO_FROM", ""),
		)
		if err != nil {
			log.Warn().Err(err).Msg("sms notifications disabled")
		} else {
			channels = append(channels, services.NamedNotifier{Name: "sms", Notifier: services.NewSMSNotifier(sender, to)})
		}
	}

	if len(channels) == 0 {
		log.Info().Msg("no contact notification channel configured")
		return nil
	}
	return services.NewNotifyEverywhere(channels...)
}

// newImageIntake returns nil when storage is not configured; uploads then answer 503.
func newImageIntake(ctx context.Context, c map[string]string) (*services.ImageIntake, error) {
	if config.GetString(c, "STORAGE_BUCKET", "") == "" {
		log.Info().Msg("STORAGE_BUCKET not set, image uploads disabled")
		return nil, nil
	}
	uploader, err := services.NewS3Uploader(ctx, services.StorageConfig{
		Endpoint:        config.GetString(c, "STORAGE_S3_ENDPOINT", ""),
		Region:          config.GetString(c, "STORAGE_S3_REGION", "us-east-1"),
		AccessKeyID:     config.GetString(c, "STORAGE_ACCESS_KEY_ID", ""),
		SecretAccessKey: config.GetString(c, "STORAGE_SECRET_ACCESS_KEY", ""),
		Bucket:          config.GetString(c, "STORAGE_BUCKET", ""),
		SupabaseURL:     config.GetString(c, "SUPABASE_URL", ""),
	})
	if err != nil {
		return nil, fmt.Errorf("image storage: %w", err)
	}
	return services.NewImageIntake(uploader, config.GetString(c, "STORAGE_PREFIX", "projects")), nil
}
