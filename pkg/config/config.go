package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "homeboard"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "HOMEBOARD_DB_DSN"
	EnvDBHost = "HOMEBOARD_DB_HOST"
	EnvDBUser = "HOMEBOARD_DB_USER"
	EnvDBName = "HOMEBOARD_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	VoterLoad    VoterLoadConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HOMEBOARD_APP_ENV" required:"true"`
	Port         string `envconfig:"HOMEBOARD_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HOMEBOARD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HOMEBOARD_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HOMEBOARD_DB_DSN"`
	Driver string `envconfig:"HOMEBOARD_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HOMEBOARD_DB_HOST"`
	LegacyPort     int    `envconfig:"HOMEBOARD_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HOMEBOARD_DB_USER"`
	LegacyPassword string `envconfig:"HOMEBOARD_DB_PASSWORD"`
	LegacyName     string `envconfig:"HOMEBOARD_DB_NAME"`
	LegacySSLMode  string `envconfig:"HOMEBOARD_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HOMEBOARD_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HOMEBOARD_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HOMEBOARD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HOMEBOARD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HOMEBOARD_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HOMEBOARD_REDIS_ADDR"`
	Password     string        `envconfig:"HOMEBOARD_REDIS_PASSWORD"`
	DB           int           `envconfig:"HOMEBOARD_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HOMEBOARD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HOMEBOARD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HOMEBOARD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HOMEBOARD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HOMEBOARD_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HOMEBOARD_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HOMEBOARD_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"HOMEBOARD_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"HOMEBOARD_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HOMEBOARD_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HOMEBOARD_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HOMEBOARD_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HOMEBOARD_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HOMEBOARD_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HOMEBOARD_AUTO_MIGRATE" default:"false"`
}

type VoterLoadConfig struct {
	FilePath  string `envconfig:"HOMEBOARD_VOTER_CSV_PATH" default:"data/newton_voters.csv"`
	BatchSize int    `envconfig:"HOMEBOARD_VOTER_LOAD_BATCH_SIZE" default:"500"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
