package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"leasedash/server/internal/prefs"
)

type PreferencesHandler struct {
	store prefs.Store
}

func NewPreferencesHandler(store prefs.Store) *PreferencesHandler {
	return &PreferencesHandler{store: store}
}

// SetupPreferencesRoutes adds saved-preference routes to the router
func SetupPreferencesRoutes(router *gin.Engine, store prefs.Store) {
	handler := NewPreferencesHandler(store)

	router.GET("/api/preferences", handler.ListPreferences)
	router.GET("/api/preferences/:key", handler.GetPreference)
	router.PUT("/api/preferences/:key", handler.SetPreference)
	router.DELETE("/api/preferences/:key", handler.DeletePreference)
}

// ListPreferences returns the keys of all saved preferences
func (h *PreferencesHandler) ListPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keys": h.store.Keys()})
}

// GetPreference returns one saved preference value
func (h *PreferencesHandler) GetPreference(c *gin.Context) {
	key := c.Param("key")
	value, ok := h.store.Get(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preference not found"})
		return
	}
	c.Data(http.StatusOK, "application/json", value)
}

// SetPreference stores an opaque JSON value under the given key
func (h *PreferencesHandler) SetPreference(c *gin.Context) {
	key := c.Param("key")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value must be valid JSON"})
		return
	}

	if err := h.store.Set(key, json.RawMessage(body)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key})
}

// DeletePreference removes a saved preference
func (h *PreferencesHandler) DeletePreference(c *gin.Context) {
	key := c.Param("key")
	if err := h.store.Delete(key); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
