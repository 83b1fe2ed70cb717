package cfg

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http       *HTTPConfig
	Db         *PGDBCfg
	Redis      *RedisCfg
	Kafka      *KafkaCfg
	Storefront *StorefrontCfg
	Pricing    *PricingCfg
	Checkout   *CheckoutCfg
	Promo      *PromoCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	CartTTL     time.Duration
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

// StorefrontCfg описывает внешний Storefront API, создающий заказы.
type StorefrontCfg struct {
	Endpoint    string
	AccessToken string
	Timeout     time.Duration
	MaxRetries  int
}

// PricingCfg задаёт правила расчёта стоимости корзины.
type PricingCfg struct {
	Currency              string
	FreeShippingThreshold int64 // минорные единицы
	FlatShippingFee       int64 // минорные единицы
}

// CheckoutCfg задаёт тайминги машины состояний чекаута и удалённой синхронизации.
type CheckoutCfg struct {
	ErrorResetDelay time.Duration
	SyncDebounce    time.Duration
	SyncMaxRetries  int
}

// PromoRule — одно правило таблицы промокодов.
type PromoRule struct {
	Code        string     `json:"code"`
	Kind        string     `json:"kind"`
	Value       int64      `json:"value"`
	MinSubtotal int64      `json:"min_subtotal"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type PromoCfg struct {
	Rules []PromoRule
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	storefront, err := loadStorefrontCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	pricing, err := loadPricingCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	checkout, err := loadCheckoutCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	promo, err := loadPromoCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:       http,
		Db:         db,
		Redis:      redis,
		Kafka:      kafka,
		Storefront: storefront,
		Pricing:    pricing,
		Checkout:   checkout,
		Promo:      promo,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultCartTTL      = 30 * 24 * time.Hour
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetriesStr := getEnvOrDefault("MAX_RETRIES", strconv.Itoa(defaultMaxRetries))
	maxRetries, err := strconv.Atoi(maxRetriesStr)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	cartTTL, err := parseDurationEnv("CART_TTL", defaultCartTTL)
	if err != nil {
		log.Errorf(err, "invalid CART_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		CartTTL:     cartTTL,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := strings.Split(brokerStr, ",")

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC environment variable is required")
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	networkMode := getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode)

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             topic,
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       networkMode,
	}, nil
}

func loadStorefrontCfg() (*StorefrontCfg, error) {
	const (
		defaultTimeout    = 10 * time.Second
		defaultMaxRetries = 3
	)

	endpoint := getEnv("STOREFRONT_ENDPOINT")
	if endpoint == "" {
		return nil, fmt.Errorf("STOREFRONT_ENDPOINT environment variable is required")
	}

	token := getEnv("STOREFRONT_ACCESS_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("STOREFRONT_ACCESS_TOKEN environment variable is required")
	}

	timeout, err := parseDurationEnv("STOREFRONT_TIMEOUT", defaultTimeout)
	if err != nil {
		return nil, e.Wrap("STOREFRONT_TIMEOUT", err)
	}

	maxRetries, err := parseIntEnv("STOREFRONT_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("STOREFRONT_MAX_RETRIES", err)
	}

	return &StorefrontCfg{
		Endpoint:    endpoint,
		AccessToken: token,
		Timeout:     timeout,
		MaxRetries:  maxRetries,
	}, nil
}

func loadPricingCfg() (*PricingCfg, error) {
	const (
		defaultCurrency = "INR"
		// ₹5,000 и ₹200 в пайсах
		defaultFreeShippingThreshold = 500_000
		defaultFlatShippingFee       = 20_000
	)

	threshold, err := parseInt64Env("FREE_SHIPPING_THRESHOLD", defaultFreeShippingThreshold)
	if err != nil {
		return nil, e.Wrap("FREE_SHIPPING_THRESHOLD", err)
	}

	fee, err := parseInt64Env("FLAT_SHIPPING_FEE", defaultFlatShippingFee)
	if err != nil {
		return nil, e.Wrap("FLAT_SHIPPING_FEE", err)
	}

	return &PricingCfg{
		Currency:              getEnvOrDefault("CART_CURRENCY", defaultCurrency),
		FreeShippingThreshold: threshold,
		FlatShippingFee:       fee,
	}, nil
}

func loadCheckoutCfg() (*CheckoutCfg, error) {
	const (
		defaultErrorResetDelay = 5 * time.Second
		defaultSyncDebounce    = 2 * time.Second
		defaultSyncMaxRetries  = 3
	)

	resetDelay, err := parseDurationEnv("CHECKOUT_ERROR_RESET_DELAY", defaultErrorResetDelay)
	if err != nil {
		return nil, e.Wrap("CHECKOUT_ERROR_RESET_DELAY", err)
	}

	debounce, err := parseDurationEnv("CART_SYNC_DEBOUNCE", defaultSyncDebounce)
	if err != nil {
		return nil, e.Wrap("CART_SYNC_DEBOUNCE", err)
	}

	syncRetries, err := parseIntEnv("CART_SYNC_MAX_RETRIES", defaultSyncMaxRetries)
	if err != nil {
		return nil, e.Wrap("CART_SYNC_MAX_RETRIES", err)
	}

	return &CheckoutCfg{
		ErrorResetDelay: resetDelay,
		SyncDebounce:    debounce,
		SyncMaxRetries:  syncRetries,
	}, nil
}

// loadPromoCfg читает таблицу промокодов из PROMO_RULES (JSON-массив).
// При отсутствии переменной используется встроенная таблица.
func loadPromoCfg() (*PromoCfg, error) {
	raw := getEnv("PROMO_RULES")
	if raw == "" {
		return &PromoCfg{Rules: defaultPromoRules()}, nil
	}

	var rules []PromoRule
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		return nil, fmt.Errorf("invalid PROMO_RULES: %w", err)
	}

	return &PromoCfg{Rules: rules}, nil
}

func defaultPromoRules() []PromoRule {
	return []PromoRule{
		{Code: "SAVE20", Kind: "PERCENTAGE", Value: 20},
		{Code: "FLAT500", Kind: "FIXED", Value: 50_000, MinSubtotal: 200_000},
	}
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, fmt.Errorf("incorrect value %q: %w", v, err)
	}

	return intValue, nil
}

func parseInt64Env(key string, defaultValue int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("incorrect value %q: %w", v, err)
	}

	return intValue, nil
}
