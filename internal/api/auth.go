package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dchest/uniuri"
	"github.com/gin-gonic/gin"
	"github.com/spruceid/siwe-go"

	"github.com/ethereum/go-ethereum/crypto"

	"stakeview/internal/api/jwt"
	"stakeview/internal/chainapi"
	"stakeview/internal/evm"
)

var ctx = context.Background()

type signinParams struct {
	Message   string `json:"message" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// Nonce the nonce lives in redis for a minute; there is no user row to hang
// it on before the wallet has proven itself.
func Nonce(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	address := c.Param("address")

	if !evm.IsValidAddress(address) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address format"})
		return
	}

	nonce := siwe.GenerateNonce()

	err := app.Rdb.Set(ctx, "nonce@"+address, nonce, 1*time.Minute).Err()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nonce": nonce,
	})
}

// Signin verifies a SIWE message against the cached nonce and issues a JWT.
// Wallet addresses listed in ADMIN_ADDRESSES get the admin role.
func Signin(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	var signinP signinParams
	if err := c.ShouldBindJSON(&signinP); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	siweMessage, err := siwe.ParseMessage(signinP.Message)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	addr := siweMessage.GetAddress().String()
	nonce, err := app.Rdb.Get(ctx, "nonce@"+addr).Result()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nonce expired"})
		return
	}
	// domain is cors restricted, the one from the message is fine
	domain := siweMessage.GetDomain()
	publicKey, err := siweMessage.Verify(signinP.Signature, &domain, &nonce, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	addr = crypto.PubkeyToAddress(*publicKey).Hex()
	if addr == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid signature"})
		return
	}
	app.Rdb.Del(ctx, "nonce@"+addr)

	role := jwt.RoleUser
	for _, admin := range strings.Split(os.Getenv("ADMIN_ADDRESSES"), ",") {
		if admin != "" && strings.EqualFold(strings.TrimSpace(admin), addr) {
			role = jwt.RoleAdmin
			break
		}
	}
	token, err := jwt.GenerateJWT(addr, role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":     addr,
		"role":        role,
		"invite_slug": inviteSlug(app, addr),
		"jwt":         token,
	})
}

// inviteSlug hands every wallet a stable short referral slug so the UI can
// render share links without exposing raw addresses.
func inviteSlug(app *chainapi.App, address string) string {
	existing, err := app.Rdb.Get(ctx, "invite@"+address).Result()
	if err == nil && existing != "" {
		return existing
	}
	for {
		slug := uniuri.NewLenChars(8, []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"))
		taken, _ := app.Rdb.Get(ctx, "slug@"+slug).Result()
		if taken != "" {
			continue
		}
		app.Rdb.Set(ctx, "slug@"+slug, address, 0)
		app.Rdb.Set(ctx, "invite@"+address, slug, 0)
		return slug
	}
}

// ResolveInvite maps a share slug back to its wallet address.
func ResolveInvite(c *gin.Context) {
	app := c.MustGet("app").(*chainapi.App)
	slug := c.Param("slug")
	address, err := app.Rdb.Get(ctx, "slug@"+slug).Result()
	if err != nil || address == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown invite %q", slug)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address})
}
