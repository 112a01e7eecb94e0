package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr      string
	JWTSecret string

	// Remote data gateway (Firebase project). When ProjectID is empty the
	// server falls back to the in-memory gateway, useful for local runs.
	FirebaseProjectID       string
	FirebaseCredentialsFile string
	FirebaseWebAPIKey       string

	// Optional listing-snapshot cache.
	RedisAddr     string
	RedisPassword string

	// Captured/uploaded image storage.
	UploadsDir    string
	CloudinaryURL string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("MAKAZI_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	uploads := os.Getenv("UPLOADS_DIR")
	if uploads == "" {
		uploads = "./uploads"
	}

	return Config{
		Addr:                    addr,
		JWTSecret:               os.Getenv("JWT_SECRET"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		FirebaseWebAPIKey:       os.Getenv("FIREBASE_WEB_API_KEY"),
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		UploadsDir:              uploads,
		CloudinaryURL:           os.Getenv("CLOUDINARY_URL"),
	}
}
