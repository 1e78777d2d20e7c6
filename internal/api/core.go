package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stakeview/internal/chainapi"
)

func GetGasPrice(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)

	gasPrice, err := app.Rpc.GetGasPrice(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"gas_price": gasPrice.String()})
}

func GetBalance(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	address := c.Param("address")

	balance, err := app.Rpc.GetBalance(c, address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tokenBalance, _ := app.TokenBalance(c, address)

	c.JSON(http.StatusOK, gin.H{
		"native": balance.String(),
		"token":  tokenBalance,
	})
}

func GetPrice(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)

	price, err := app.TokenPrice(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"price": "0"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price.String()})
}

func GetDailyRate(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)

	rate := app.DailyRate(c)
	c.JSON(http.StatusOK, gin.H{
		"rate":    rate.String(),
		"percent": chainapi.DailyRatePercent(rate),
	})
}

func GetTotals(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)

	c.JSON(http.StatusOK, gin.H{
		"total_staked": app.TotalStaked(c),
	})
}

func GetLevelMeta(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	level := intQuery(c, "level", 0)

	meta, err := app.LevelInfo(c, level)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if meta == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, meta)
}

func GetRankMeta(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	rank := intQuery(c, "rank", 0)

	meta, err := app.RankInfo(c, rank)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if meta == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, meta)
}
