package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppPort string

	UCLClientID     string
	UCLClientSecret string
	RedirectURI     string

	// SecretKey signs the login-transaction cookie.
	SecretKey string

	// PublicBaseURL is the externally reachable base of this service,
	// used to build the /success URL handed to the mobile app.
	PublicBaseURL string

	// ResponseMode selects how the callback delivers the credential:
	// "page" renders an app-open HTML page, "redirect" issues a 302.
	ResponseMode string

	// RequireStudent rejects profiles whose student flag is false.
	RequireStudent bool

	FirebaseServiceAccount     string
	FirebaseServiceAccountFile string

	AppleAppID             string
	AndroidPackageName     string
	AndroidCertFingerprint string
}

const (
	ResponseModePage     = "page"
	ResponseModeRedirect = "redirect"
)

func Load() Config {

	port := envOrDefault("PORT", "8080")

	cfg := Config{

		AppPort: port,

		UCLClientID:     envOrDefault("UCL_CLIENT_ID", "your_ucl_client_id"),
		UCLClientSecret: envOrDefault("UCL_CLIENT_SECRET", "your_ucl_client_secret"),
		RedirectURI:     envOrDefault("REDIRECT_URI", "http://localhost:"+port+"/callback"),

		SecretKey: envOrDefault("SECRET_KEY", "supersecretkey123"),

		PublicBaseURL: envOrDefault("PUBLIC_BASE_URL", "http://localhost:"+port),

		ResponseMode: envOrDefault("RESPONSE_MODE", ResponseModePage),

		RequireStudent: envBool("REQUIRE_STUDENT", false),

		FirebaseServiceAccount:     os.Getenv("FIREBASE_SERVICE_ACCOUNT"),
		FirebaseServiceAccountFile: envOrDefault("FIREBASE_SERVICE_ACCOUNT_FILE", "firebase-service-account.json"),

		AppleAppID:             envOrDefault("APPLE_APP_ID", "5ZHL4H672X.com.mycompany.conni"),
		AndroidPackageName:     envOrDefault("ANDROID_PACKAGE_NAME", "com.mycompany.conni"),
		AndroidCertFingerprint: envOrDefault("ANDROID_CERT_FINGERPRINT", "94:C8:4A:3D:94:8F:60:2B:4C:18:FF:AD:8D:2C:82:6D:33:99:CF:59:2F:F0:44:E6:80:15:56:2B:82:B1:91:30"),
	}

	return cfg

}

// UCLClientIDSet reports whether a real client id was supplied, i.e. the
// placeholder default has been replaced. Surfaced by /health.
func (c Config) UCLClientIDSet() bool {
	return c.UCLClientID != "" && c.UCLClientID != "your_ucl_client_id"
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
