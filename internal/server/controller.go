package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"stakeview/internal/api"
	"stakeview/internal/api/jwt"
	"stakeview/internal/api/middleware"
	"stakeview/internal/chainapi"
	"stakeview/internal/evm"
)

var App *chainapi.App

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
}

func ApiInit() { // Run Api Server
	App = chainapi.Init()
	SetLogger(os.Getenv("FILE_LOG"))
	router := gin.Default()
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	// 100 requests per second per ip
	store := ratelimit.RedisStore(&ratelimit.RedisOptions{
		RedisClient: redis.NewClient(&redis.Options{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       1,
		}),
		Rate:  time.Second,
		Limit: 100,
	})
	mw := ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://0.0.0.0:3000",
			"http://localhost:3000",
		},
		AllowHeaders:  []string{"Origin", "Access-Control-Allow-Origin", "Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		AllowMethods:  []string{"GET, POST, OPTIONS, PUT, DELETE"},
		MaxAge:        24 * time.Hour,
	}))
	router.Use(func(c *gin.Context) {
		c.Set("app", App)
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ws", mw, wsHandler)
	router.GET("/ws/", mw, wsHandler)
	core := router.Group("/core/")
	{
		core.GET("/gasPrice", mw, api.GetGasPrice)
		core.GET("/gasPrice/", mw, api.GetGasPrice)
		core.GET("/balance/:address", mw, api.GetBalance)
		core.GET("/balance/:address/", mw, api.GetBalance)
		core.GET("/price", mw, api.GetPrice)
		core.GET("/price/", mw, api.GetPrice)
		core.GET("/dailyRate", mw, api.GetDailyRate)
		core.GET("/dailyRate/", mw, api.GetDailyRate)
		core.GET("/totals", mw, api.GetTotals)
		core.GET("/totals/", mw, api.GetTotals)
		core.GET("/level", mw, api.GetLevelMeta)
		core.GET("/level/", mw, api.GetLevelMeta)
		core.GET("/rank", mw, api.GetRankMeta)
		core.GET("/rank/", mw, api.GetRankMeta)
		core.GET("/invite/:slug", mw, api.ResolveInvite)
		core.GET("/invite/:slug/", mw, api.ResolveInvite)
	}
	auth := router.Group("/auth/")
	{
		auth.GET("/nonce/:address", mw, api.Nonce)
		auth.GET("/nonce/:address/", mw, api.Nonce)
		auth.POST("/signin", mw, api.Signin)
		auth.POST("/signin/", mw, api.Signin)
	}
	users := router.Group("/users/").Use(middleware.Auth())
	{
		users.GET("/record/:address", mw, api.GetRecord)
		users.GET("/record/:address/", mw, api.GetRecord)
		users.GET("/report/:address", mw, api.GetReport)
		users.GET("/report/:address/", mw, api.GetReport)
		users.GET("/bonds/:address", mw, api.GetBonds)
		users.GET("/bonds/:address/", mw, api.GetBonds)
		users.GET("/directs/:address", mw, api.GetDirects)
		users.GET("/directs/:address/", mw, api.GetDirects)
		users.GET("/activity/:address", mw, api.GetActivity)
		users.GET("/activity/:address/", mw, api.GetActivity)
		users.GET("/roi/:address", mw, api.GetRoiHistory)
		users.GET("/roi/:address/", mw, api.GetRoiHistory)
		users.GET("/team/:address", mw, api.GetTeam)
		users.GET("/team/:address/", mw, api.GetTeam)
	}
	tx := router.Group("/tx/").Use(middleware.Auth())
	{
		tx.POST("/stake", mw, api.Stake)
		tx.POST("/stake/", mw, api.Stake)
		tx.POST("/unstake", mw, api.Unstake)
		tx.POST("/unstake/", mw, api.Unstake)
		tx.POST("/bond/buy", mw, api.BuyBond)
		tx.POST("/bond/buy/", mw, api.BuyBond)
		tx.POST("/bond/withdraw", mw, api.WithdrawBond)
		tx.POST("/bond/withdraw/", mw, api.WithdrawBond)
		tx.POST("/approve", mw, api.Approve)
		tx.POST("/approve/", mw, api.Approve)
	}
	admin := router.Group("/admin/").Use(middleware.Admin())
	{
		admin.GET("/export", mw, api.Export)
		admin.GET("/export/", mw, api.Export)
		admin.GET("/exportAll", mw, api.ExportAll)
		admin.GET("/exportAll/", mw, api.ExportAll)
		admin.POST("/rate", mw, api.SetRate)
		admin.POST("/rate/", mw, api.SetRate)
		admin.POST("/compound", mw, api.Compound)
		admin.POST("/compound/", mw, api.Compound)
		admin.POST("/fund", mw, api.Fund)
		admin.POST("/fund/", mw, api.Fund)
		admin.POST("/emergencyWithdraw", mw, api.EmergencyWithdraw)
		admin.POST("/emergencyWithdraw/", mw, api.EmergencyWithdraw)
		admin.POST("/reset", mw, api.ResetAccount)
		admin.POST("/reset/", mw, api.ResetAccount)
		admin.POST("/ownership", mw, api.Ownership)
		admin.POST("/ownership/", mw, api.Ownership)
		admin.POST("/block", mw, api.Block)
		admin.POST("/block/", mw, api.Block)
		admin.POST("/unblock", mw, api.Unblock)
		admin.POST("/unblock/", mw, api.Unblock)
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	fmt.Println("[ Stakeview backend is up and listening to :" + port + " ]")
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to run Stakeview backend on :"+port+": ", err)
	}
}

// wsHandler keeps one socket per wallet session and forwards refresh pings
// published after confirmed writes, so the UI refetches instead of polling.
func wsHandler(c *gin.Context) {
	token := c.DefaultQuery("token", "")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	address, _, err := jwt.ValidateToken(token)
	if err != nil || !evm.IsValidAddress(address) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to set websocket upgrade: %+v", err)
		return
	}
	defer conn.Close()
	app := c.MustGet("app").(*chainapi.App)

	lastPong := time.Now()
	conn.SetPongHandler(func(string) error {
		lastPong = time.Now()
		return nil
	})
	pingPeriod := 3 * time.Second
	timeout := 30 * time.Second
	var mu sync.Mutex // serializes writes to the socket

	// closing the subscription here ends the forwarding goroutine's channel
	// range, so a dead socket does not leak the goroutine until the next
	// publish for this wallet
	pubsub := app.Rdb.Subscribe(c, fmt.Sprintf("refresh_ch@%s", address))
	defer pubsub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ch := pubsub.Channel()
		for msg := range ch {
			mu.Lock()
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				fmt.Println("Socket: Failed to send refresh:", err)
				mu.Unlock()
				_ = conn.Close()
				return
			}
			mu.Unlock()
		}
	}()
	// drain client frames so pongs are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				_ = conn.Close()
				return
			}
		}
	}()
	for {
		select {
		case <-done:
			return
		default:
		}
		if time.Since(lastPong) > timeout {
			log.Println("Socket: Client did not respond to ping, closing connection")
			return
		}
		mu.Lock()
		if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
			mu.Unlock()
			return
		}
		mu.Unlock()
		time.Sleep(pingPeriod)
	}
}
