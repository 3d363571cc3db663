package config

import (
	"errors"
	"net/mail"
	"os"

	"github.com/joho/godotenv"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"

	"tuition-show/biz/infrastructure/util/log"
)

type Auth struct {
	SecretKey    string
	PublicKey    string
	AccessExpire int64 `json:",default=604800"`
}

type Config struct {
	service.ServiceConf
	ListenOn string `json:",default=0.0.0.0:8888"`
	State    string `json:",optional"`
	Auth     Auth
	Mongo    struct {
		URL string
		DB  string `json:",default=TuitionEd"`
	}
	MySQL struct {
		DSN string `json:",optional"`
	}
	Cache   cache.CacheConf
	Redis   *redis.RedisConf
	Mail    MailConfig
	Otp     OtpConfig
	Outbox  OutboxConfig
	Broker  BrokerConfig
	Metrics MetricsConfig
}

type MailConfig struct {
	// gateway | smtp | log
	Provider          string `json:",default=log,options=gateway|smtp|log"`
	From              string `json:",optional"`
	GatewayURL        string `json:",optional"`
	GatewayToken      string `json:",optional"`
	SMTPHost          string `json:",optional"`
	SMTPPort          int    `json:",default=587"`
	Username          string `json:",optional"`
	Password          string `json:",optional"`
	OperatorAddresses []string
}

type OtpConfig struct {
	Expire int `json:",default=300"` // 秒
}

type OutboxConfig struct {
	RelayInterval int   `json:",default=60"`  // 秒
	Lease         int   `json:",default=120"` // 秒，投递中记录被重新认领前的等待时间
	MaxAttempts   int64 `json:",default=5"`
	BatchSize     int64 `json:",default=50"`
}

type BrokerConfig struct {
	URL      string `json:",optional"`
	Exchange string `json:",default=tuition.booking"`
}

type MetricsConfig struct {
	Addr string `json:",default=:9091"`
	Path string `json:",default=/hertz"`
}

func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("NewConfig no .env file loaded: %v", err)
	}

	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	log.Info("NewConfig load config from path: %s", path)
	if err := conf.Load(path, c, conf.UseEnv()); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.SetUp(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate 检查 go-zero 标签无法表达的约束
func (c *Config) Validate() error {
	if len(c.Mail.OperatorAddresses) == 0 {
		return errors.New("config: Mail.OperatorAddresses must not be empty")
	}
	for _, addr := range c.Mail.OperatorAddresses {
		if _, err := mail.ParseAddress(addr); err != nil {
			return errors.New("config: invalid operator address " + addr)
		}
	}
	switch c.Mail.Provider {
	case "gateway":
		if c.Mail.GatewayURL == "" {
			return errors.New("config: Mail.GatewayURL is required for the gateway provider")
		}
	case "smtp":
		if c.Mail.SMTPHost == "" || c.Mail.From == "" {
			return errors.New("config: Mail.SMTPHost and Mail.From are required for the smtp provider")
		}
	}
	if c.Outbox.MaxAttempts < 1 {
		return errors.New("config: Outbox.MaxAttempts must be at least 1")
	}
	if c.Outbox.RelayInterval < 1 {
		return errors.New("config: Outbox.RelayInterval must be at least 1 second")
	}
	if c.Outbox.Lease < 1 {
		return errors.New("config: Outbox.Lease must be at least 1 second")
	}
	return nil
}
