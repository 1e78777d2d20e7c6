package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stakeview/internal/chainapi"
)

// GetActivity returns the paginated event history of an account, scanning
// the default lookback window unless from/to blocks are pinned.
func GetActivity(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	address := c.Param("address")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if size < 1 || size > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.New("maximum size is 100").Error()})
		return
	}
	fromBlock, _ := strconv.ParseUint(c.DefaultQuery("from", "0"), 10, 64)
	toBlock, _ := strconv.ParseUint(c.DefaultQuery("to", "0"), 10, 64)

	var cached []chainapi.Activity
	if fromBlock == 0 && toBlock == 0 && app.CacheGet(c, "activity", address, &cached) {
		c.JSON(http.StatusOK, chainapi.Paginate(cached, page, size))
		return
	}
	activity, err := app.Activity(c, address, fromBlock, toBlock)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fromBlock == 0 && toBlock == 0 {
		app.CacheSet(c, "activity", address, activity)
	}
	c.JSON(http.StatusOK, chainapi.Paginate(activity, page, size))
}

func GetRoiHistory(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	address := c.Param("address")
	page := intQuery(c, "page", 1)
	size := intQuery(c, "size", 20)
	if size < 1 || size > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maximum size is 100"})
		return
	}

	history, err := app.RoiHistory(c, address, page, size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}
