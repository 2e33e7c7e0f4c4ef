package config

type App struct {
	Port           string `env:"APP_PORT" default:"8080"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	JWTSecret      string `env:"JWT_SECRET" default:"local_dev_secret"`
	OpenLibraryURL string `env:"OPENLIBRARY_URL" default:"https://openlibrary.org"`
	GutendexURL    string `env:"GUTENDEX_URL" default:"https://gutendex.com"`
	BillingDelayMS int    `env:"BILLING_DELAY_MS" default:"2000"`
	Env            string `env:"APP_ENV" default:"dev"`
}
