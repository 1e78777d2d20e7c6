package api

import (
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"

	"stakeview/internal/chainapi"
)

type adminParams struct {
	Amount  string `json:"amount"`
	Rate    string `json:"rate"`
	Address string `json:"address"`
	From    int    `json:"from"`
	To      int    `json:"to"`
}

// Export returns one hydrated window of the registered-user array.
func Export(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	offset := intQuery(c, "offset", 0)
	limit := intQuery(c, "limit", 100)
	if limit > 1000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "maximum limit is 1000"})
		return
	}

	export, err := app.UserWindow(c, offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, export)
}

// ExportAll walks the whole registered-user array, admin only. Can take a
// while on a large ledger.
func ExportAll(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	size := intQuery(c, "size", 100)

	export, err := app.ExportAll(c, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, export)
}

func SetRate(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var aParams adminParams
	if err := c.ShouldBindJSON(&aParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rate, ok := new(big.Int).SetString(aParams.Rate, 10)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate"})
		return
	}
	txHash, err := app.SetDailyRate(c, rate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

func Compound(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var aParams adminParams
	if err := c.ShouldBindJSON(&aParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txHash, err := app.BatchCompoundRange(c, aParams.From, aParams.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

func Fund(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var aParams adminParams
	if err := c.ShouldBindJSON(&aParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, ok := parseAmount(aParams.Amount)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	txHash, err := app.FundValuationPool(c, amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

func EmergencyWithdraw(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var aParams adminParams
	if err := c.ShouldBindJSON(&aParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, ok := parseAmount(aParams.Amount)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	txHash, err := app.EmergencyWithdraw(c, amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

func ResetAccount(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var aParams adminParams
	if err := c.ShouldBindJSON(&aParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txHash, err := app.EmergencyResetAccount(c, aParams.Address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

func Ownership(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var aParams adminParams
	if err := c.ShouldBindJSON(&aParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txHash, err := app.TransferOwnership(c, aParams.Address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

func Block(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var aParams adminParams
	if err := c.ShouldBindJSON(&aParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txHash, err := app.BlockAccount(c, aParams.Address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

func Unblock(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var aParams adminParams
	if err := c.ShouldBindJSON(&aParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txHash, err := app.UnblockAccount(c, aParams.Address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}
