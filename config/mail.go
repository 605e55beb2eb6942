package config

// MailConfig contains SMTP delivery configuration for MFA codes and
// password-reset links.
type MailConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"587"`
	Username string `env:"USERNAME" envDefault:""`
	Password string `env:"PASSWORD" envDefault:""`
	From     string `env:"FROM"     envDefault:"intranet@example.com"`
	FromName string `env:"FROM_NAME" envDefault:"School Intranet"`

	// UseTLS enables STARTTLS on the SMTP connection.
	UseTLS bool `env:"USE_TLS" envDefault:"true"`

	// Enabled allows disabling delivery entirely (codes are still issued;
	// dev mode logs instead of sending).
	Enabled bool `env:"ENABLED" envDefault:"true"`
}

// Sanitize applies guardrails to mail configuration values.
func (m *MailConfig) Sanitize() {
	if m.Port <= 0 || m.Port > 65535 {
		m.Port = 587
	}
	if m.From == "" {
		m.From = "intranet@example.com"
	}
}
