package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the gateway reads from the environment. Missing
// Supabase variables are not fatal: the gateway starts in demo mode and serves
// the built-in fallback content instead.
type Config struct {
	Port string

	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	StorageBucket      string

	// ContentFallback selects what public reads return when the backend fails:
	// "demo" serves the built-in demo records, "empty" serves empty lists.
	ContentFallback string

	ResendAPIKey string
	ContactFrom  string
	ContactTo    string

	AdminEmail    string
	AdminPassword string
	JWTSecret     string
}

// Load reads configuration from the environment. A .env file is honored when
// present but its absence is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "8080"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		StorageBucket:      getEnv("SUPABASE_STORAGE_BUCKET", "project-images"),
		ContentFallback:    getEnv("CONTENT_FALLBACK", "demo"),
		ResendAPIKey:       os.Getenv("RESEND_API_KEY"),
		ContactFrom:        getEnv("CONTACT_FROM_EMAIL", "Contacto MG Arquitectura <contacto@mgarquitecturauy.com>"),
		ContactTo:          getEnv("CONTACT_TO_EMAIL", "proyectos@mgarquitecturauy.com"),
		AdminEmail:         getEnv("ADMIN_EMAIL", "proyectos.mgimenez@gmail.com"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
	}
}

// SupabaseConfigured reports whether the hosted backend can be reached at all.
// Without URL and keys the gateway degrades to demo mode instead of crashing.
func (c *Config) SupabaseConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != "" && c.SupabaseServiceKey != ""
}

// MailConfigured reports whether the contact relay can dispatch email.
func (c *Config) MailConfigured() bool {
	return c.ResendAPIKey != ""
}

// AuthConfigured reports whether the admin login can be used.
func (c *Config) AuthConfigured() bool {
	return c.AdminPassword != "" && c.JWTSecret != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
