package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath         = "."
	defaultStoragePath  = "storefront.db"
	defaultWriteTimeout = 5 * time.Second
	defaultQueueSize    = 64
	defaultAPITimeout   = 15 * time.Second
	defaultCountriesURL = "https://countriesnow.space/api/v0.1/countries/codes"
	defaultHTTPHost     = "127.0.0.1"
	defaultHTTPPort     = 8070
	defaultBodyLimit    = "1M"
)

// Storage drivers supported for device storage.
const (
	StorageDriverSQLite = "sqlite"
	StorageDriverBlob   = "blob"
	StorageDriverRedis  = "redis"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Host               string `json:"host" yaml:"host"`
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Storage configures the device key-value storage
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// API configures the remote marketplace REST API
	API *APIConfig `json:"api" yaml:"api"`

	// Country configures the country code lookup service
	Country *CountryConfig `json:"country" yaml:"country"`

	// QRCode configuration for cart invite codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StorageConfig defines where device state is persisted
type StorageConfig struct {
	// Driver is one of "sqlite", "blob" or "redis"
	Driver string `json:"driver" yaml:"driver"`

	// Path of the SQLite database file (sqlite driver)
	Path string `json:"path" yaml:"path"`

	// BucketURL is a gocloud.dev bucket URL, e.g. file:///var/lib/storefront or mem:// (blob driver)
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	Redis RedisConfig `json:"redis" yaml:"redis"`

	// WriteTimeout bounds a single persistence write
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`

	// QueueSize is the capacity of the persistence write queue
	QueueSize int `json:"queueSize" yaml:"queueSize"`
}

type RedisConfig struct {
	Addr      string `json:"addr" yaml:"addr"`
	Password  string `json:"password" yaml:"password"`
	DB        int    `json:"db" yaml:"db"`
	KeyPrefix string `json:"keyPrefix" yaml:"keyPrefix"`
}

// APIConfig defines the remote REST API endpoints.
// Each backend service listens on its own port of the same host.
type APIConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	Ports   ServicePorts  `json:"ports" yaml:"ports"`
	Breaker BreakerConfig `json:"breaker" yaml:"breaker"`
}

type ServicePorts struct {
	Auth           int `json:"auth" yaml:"auth"`
	Products       int `json:"products" yaml:"products"`
	PaymentMethods int `json:"paymentMethods" yaml:"paymentMethods"`
	StatusHistory  int `json:"statusHistory" yaml:"statusHistory"`
	Addresses      int `json:"addresses" yaml:"addresses"`
	Orders         int `json:"orders" yaml:"orders"`
	Carts          int `json:"carts" yaml:"carts"`
}

// BreakerConfig tunes the circuit breaker wrapped around REST calls
type BreakerConfig struct {
	MaxRequests      uint32        `json:"maxRequests" yaml:"maxRequests"`
	Interval         time.Duration `json:"interval" yaml:"interval"`
	Timeout          time.Duration `json:"timeout" yaml:"timeout"`
	FailureThreshold uint32        `json:"failureThreshold" yaml:"failureThreshold"`
}

type CountryConfig struct {
	URL     string        `json:"url" yaml:"url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment overrides: STORAGE_REDIS_ADDR -> storage.redis.addr
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = defaultHTTPHost
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = defaultHTTPPort
	}
	if cfg.HTTP.MaxRequestBodySize == "" {
		cfg.HTTP.MaxRequestBodySize = defaultBodyLimit
	}

	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{}
	}
	if strings.TrimSpace(cfg.Storage.Driver) == "" {
		cfg.Storage.Driver = StorageDriverSQLite
	}
	if cfg.Storage.Driver == StorageDriverSQLite && cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath
	}
	if cfg.Storage.WriteTimeout <= 0 {
		cfg.Storage.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Storage.QueueSize <= 0 {
		cfg.Storage.QueueSize = defaultQueueSize
	}

	if cfg.API == nil {
		cfg.API = &APIConfig{}
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8080"
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = defaultAPITimeout
	}
	applyPortDefaults(&cfg.API.Ports)

	if cfg.Country == nil {
		cfg.Country = &CountryConfig{}
	}
	if cfg.Country.URL == "" {
		cfg.Country.URL = defaultCountriesURL
	}
}

// applyPortDefaults fills in the ports the marketplace backend uses out of the box.
func applyPortDefaults(ports *ServicePorts) {
	defaults := []struct {
		port *int
		def  int
	}{
		{&ports.Auth, 8080},
		{&ports.Products, 8097},
		{&ports.PaymentMethods, 8082},
		{&ports.StatusHistory, 8084},
		{&ports.Addresses, 8085},
		{&ports.Orders, 8088},
		{&ports.Carts, 8089},
	}
	for _, d := range defaults {
		if *d.port == 0 {
			*d.port = d.def
		}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
