// Package apiserver provides OpenAPI documentation handling
package apiserver

import (
	"embed"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

//go:embed openapi.yaml
var openAPISpec embed.FS

// OpenAPIHandler provides OpenAPI/Swagger documentation endpoints
type OpenAPIHandler struct {
	logger *zap.Logger
	spec   string
}

// NewOpenAPIHandler creates a new OpenAPI handler
func NewOpenAPIHandler(logger *zap.Logger) *OpenAPIHandler {
	specData, err := openAPISpec.ReadFile("openapi.yaml")
	if err != nil {
		logger.Error("Failed to read OpenAPI spec", zap.Error(err))
		return &OpenAPIHandler{
			logger: logger,
			spec:   "# OpenAPI spec not available",
		}
	}

	return &OpenAPIHandler{
		logger: logger,
		spec:   string(specData),
	}
}

// ServeOpenAPISpec serves the OpenAPI specification in YAML format
func (h *OpenAPIHandler) ServeOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(h.spec))
}

// ServeSwaggerUI serves a basic Swagger UI interface
func (h *OpenAPIHandler) ServeSwaggerUI(w http.ResponseWriter, r *http.Request) {
	specURL := fmt.Sprintf("%s://%s/api/v1/openapi.yaml", getScheme(r), r.Host)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Mealsmith API Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui.css" />
</head>
<body>
    <div id="swagger-ui"></div>

    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-bundle.js"></script>
    <script src="https://unpkg.com/swagger-ui-dist@5.9.0/swagger-ui-standalone-preset.js"></script>
    <script>
        window.onload = function() {
            SwaggerUIBundle({
                url: '%s',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                layout: "StandaloneLayout",
                tryItOutEnabled: true,
                supportedSubmitMethods: ['get', 'post'],
                validatorUrl: null,
                docExpansion: 'list'
            });
        };
    </script>
</body>
</html>`, specURL)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// getScheme determines the URL scheme (http/https) from the request
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}

	// Check forwarded headers for proxy setups
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return proto
	}

	if strings.Contains(r.Host, "localhost") || strings.Contains(r.Host, "127.0.0.1") {
		return "http"
	}

	return "http"
}
