package chainapi

import (
	"os"
	"strconv"

	"github.com/chenzhijie/go-web3"
	"github.com/chenzhijie/go-web3/eth"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"stakeview/internal/evm"
)

// Settings is the environment-supplied configuration of the aggregation
// layer. Amounts of blocks, not time: the scanner windows are block counts.
type Settings struct {
	ChainId         int64
	StakingAddress  string
	TokenAddress    string
	PairAddress     string
	UsdtAddress     string
	DefaultReferrer string
	ScanLookback    uint64
	ScanPruned      uint64
}

type App struct {
	Rpc      *evm.Client
	Rdb      *redis.Client
	W3       *web3.Web3
	Staking  *eth.Contract
	Token    *eth.Contract
	Pair     *eth.Contract
	Settings Settings
}

func Init() *App {
	loadEnv()
	settings := Settings{
		ChainId:         envInt64("CHAIN_ID", 137),
		StakingAddress:  os.Getenv("STAKING_CONTRACT_ADDRESS"),
		TokenAddress:    os.Getenv("TOKEN_CONTRACT_ADDRESS"),
		PairAddress:     os.Getenv("PAIR_CONTRACT_ADDRESS"),
		UsdtAddress:     os.Getenv("USDT_CONTRACT_ADDRESS"),
		DefaultReferrer: os.Getenv("DEFAULT_REFERRER"),
		ScanLookback:    envUint64("SCAN_LOOKBACK_BLOCKS", 500000),
		ScanPruned:      envUint64("SCAN_PRUNED_BLOCKS", 50000),
	}

	redisClient := setupRedis()
	client := evm.New(os.Getenv("RPC_URL"))

	web3Conn, err := web3.NewWeb3(os.Getenv("RPC_URL"))
	if err != nil {
		panic("failed to connect to RPC: " + err.Error())
	}
	web3Conn.Eth.SetChainId(settings.ChainId)
	if key := os.Getenv("ADMIN_KEY"); key != "" {
		if err := web3Conn.Eth.SetAccount(key); err != nil {
			panic("failed to load admin account: " + err.Error())
		}
	}

	staking, err := web3Conn.Eth.NewContract(stakingAbiString, settings.StakingAddress)
	if err != nil {
		panic("staking contract binding failed: " + err.Error())
	}
	token, err := web3Conn.Eth.NewContract(erc20AbiString, settings.TokenAddress)
	if err != nil {
		panic("token contract binding failed: " + err.Error())
	}
	pair, err := web3Conn.Eth.NewContract(pairAbiString, settings.PairAddress)
	if err != nil {
		panic("pair contract binding failed: " + err.Error())
	}

	return &App{
		Rpc:      client,
		Rdb:      redisClient,
		W3:       web3Conn,
		Staking:  staking,
		Token:    token,
		Pair:     pair,
		Settings: settings,
	}
}

func setupRedis() *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	return redisClient
}

func envUint64(key string, fallback uint64) uint64 {
	v, err := strconv.ParseUint(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func envInt64(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func loadEnv() {
	env := os.Getenv("APP_ENV")
	if "" == env {
		env = "development"
	}

	godotenv.Load(".env." + env + ".local")

	if "test" != env {
		godotenv.Load(".env.local")
	}
	godotenv.Load(".env." + env)
	godotenv.Load()
}
