package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":               "healthy",
		"firebase_initialized": h.resolver != nil && h.minter != nil,
		"ucl_client_id_set":    h.cfg.UCLClientIDSet(),
		"timestamp":            time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Conni UCL OAuth Backend",
		"endpoints": gin.H{
			"login":    "/login/ucl",
			"callback": "/callback",
			"success":  "/success",
			"health":   "/health",
		},
	})
}

// appleAppSiteAssociation serves the iOS universal-link descriptor so
// the /success deep link opens the app.
func (h *Handler) appleAppSiteAssociation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"applinks": gin.H{
			"details": []gin.H{
				{
					"appID": h.cfg.AppleAppID,
					"paths": []string{"/success"},
				},
			},
		},
	})
}

// assetLinks serves the Android app-link descriptor.
func (h *Handler) assetLinks(c *gin.Context) {
	c.JSON(http.StatusOK, []gin.H{
		{
			"relation": []string{"delegate_permission/common.handle_all_urls"},
			"target": gin.H{
				"namespace":                "android_app",
				"package_name":             h.cfg.AndroidPackageName,
				"sha256_cert_fingerprints": []string{h.cfg.AndroidCertFingerprint},
			},
		},
	})
}
