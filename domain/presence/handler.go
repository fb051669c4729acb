package presence

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Rasaku-Space/be-culinary-platform/config"
	"github.com/labstack/echo/v4"
)

// HeartbeatHandler updates the last active timestamp for the
// authenticated seller in Redis.
// POST /presence/heartbeat
func HeartbeatHandler(c echo.Context) error {
	userID := c.Get("user_id").(int64)

	// Presence is best effort; a failed Redis write never breaks the client.
	_ = config.SetLastActive(userID)

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetPresenceHandler reports whether a seller was recently active, for
// the storefront online badge.
// GET /users/:id/presence
func GetPresenceHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}

	last := config.GetLastActive(id)
	if last == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"online": false})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"online":      true,
		"last_active": last.UTC().Format(time.RFC3339),
	})
}
