package config

import "strings"

// HTTPConfig controls the public HTTP surface.
type HTTPConfig struct {
	AllowedOrigins  []string
	ReadTimeout     Duration
	WriteTimeout    Duration
	ShutdownTimeout Duration
	// AdminToken enables the admin routes when non-empty.
	AdminToken string
}

func loadHTTP() HTTPConfig {
	return HTTPConfig{
		AllowedOrigins:  splitList(envOrDefault(envCORSOrigins, defaultCORSOrigins)),
		ReadTimeout:     durationEnvOrDefault(envReadTimeout, defaultReadTimeout),
		WriteTimeout:    durationEnvOrDefault(envWriteTimeout, defaultWriteTimeout),
		ShutdownTimeout: durationEnvOrDefault(envShutdownTimeout, defaultShutdown),
		AdminToken:      strings.TrimSpace(envOrDefault(envAdminToken, "")),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
