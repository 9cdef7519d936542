package config

type App struct {
	Port           string `env:"APP_PORT" default:"8080"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	JWTSecret      string `env:"JWT_SECRET,required"`
	EmailDomain    string `env:"EMAIL_DOMAIN" default:".edu"`
	PlatformFeePct string `env:"PLATFORM_FEE_PERCENT" default:"0.15"`
	TokenTTLHours  int    `env:"TOKEN_TTL_HOURS" default:"168"`
	Env            string `env:"APP_ENV" default:"dev"`
}
