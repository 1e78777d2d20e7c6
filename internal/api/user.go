package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stakeview/internal/chainapi"
)

func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func GetRecord(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	address := c.Param("address")

	var cached chainapi.UserRecord
	if app.CacheGet(c, "record", address, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}
	record, err := app.Record(c, address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app.CacheSet(c, "record", address, record)
	c.JSON(http.StatusOK, record)
}

func GetReport(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	address := c.Param("address")

	var cached chainapi.UserReport
	if app.CacheGet(c, "report", address, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}
	report, err := app.Report(c, address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app.CacheSet(c, "report", address, report)
	c.JSON(http.StatusOK, report)
}

func GetBonds(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	address := c.Param("address")

	var cached []chainapi.Bond
	if app.CacheGet(c, "bonds", address, &cached) {
		c.JSON(http.StatusOK, gin.H{"results": cached})
		return
	}
	bonds, err := app.UserBonds(c, address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	app.CacheSet(c, "bonds", address, bonds)
	c.JSON(http.StatusOK, gin.H{"results": bonds})
}

func GetDirects(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	address := c.Param("address")

	directs, err := app.Directs(c, address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(directs),
		"results": directs,
	})
}
