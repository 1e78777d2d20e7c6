package api

import (
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"

	"stakeview/internal/chainapi"
)

type txParams struct {
	Amount   string `json:"amount"` // base units, decimal string
	Referrer string `json:"referrer"`
	PlanId   int    `json:"plan_id"`
	Index    int    `json:"index"`
	Spender  string `json:"spender"`
}

func parseAmount(raw string) (*big.Int, bool) {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok || amount.Sign() <= 0 {
		return nil, false
	}
	return amount, true
}

func Stake(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var tParams txParams
	if err := c.ShouldBindJSON(&tParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, ok := parseAmount(tParams.Amount)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	txHash, err := app.Stake(c, amount, tParams.Referrer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

func Unstake(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var tParams txParams
	if err := c.ShouldBindJSON(&tParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, ok := parseAmount(tParams.Amount)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	txHash, err := app.Unstake(c, amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

func BuyBond(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var tParams txParams
	if err := c.ShouldBindJSON(&tParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, ok := parseAmount(tParams.Amount)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	txHash, err := app.BuyBond(c, tParams.PlanId, amount, tParams.Referrer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

func WithdrawBond(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var tParams txParams
	if err := c.ShouldBindJSON(&tParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	txHash, err := app.WithdrawBond(c, tParams.Index)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}

func Approve(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var tParams txParams
	if err := c.ShouldBindJSON(&tParams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, ok := new(big.Int).SetString(tParams.Amount, 10)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	txHash, err := app.Approve(c, tParams.Spender, amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tx_hash": txHash})
}
