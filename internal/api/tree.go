package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stakeview/internal/chainapi"
)

// GetTeam returns the level-indexed downline of an account, optionally
// hydrated into full records. Depth is capped by the account's unlocked
// level regardless of what the caller asks for.
func GetTeam(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	address := c.Param("address")
	depth := intQuery(c, "depth", 0)
	detailed := c.DefaultQuery("detailed", "0") == "1"

	downline, err := app.Downline(c, address, depth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	walked := 0
	for _, addresses := range downline {
		walked += len(addresses)
	}
	// the walk stops at the unlocked depth; the contract counts the whole subtree
	response := gin.H{
		"levels":          downline,
		"team_size":       walked,
		"total_team_size": app.TeamSize(c, address),
	}
	if detailed {
		response["details"] = app.TeamDetails(c, downline)
	}
	c.JSON(http.StatusOK, response)
}
