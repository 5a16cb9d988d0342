/* Chemical Tank Management Server (CTMS)
Water-treatment chemical inventory, dosing parameters and anomaly review. */

package pkg

import (
	"fmt"
	"time"

	"github.com/spf13/viper" // go get github.com/spf13/viper
)

/* https://codevoweb.com/golang-gorm-postgresql-user-registration-with-http-cookies/ */

type Config struct {
	DBHost     string `mapstructure:"CTMS_DB_HOST"`
	DBPort     string `mapstructure:"CTMS_DB_PORT"`
	DBUser     string `mapstructure:"CTMS_DB_USER"`
	DBPassword string `mapstructure:"CTMS_DB_PASSWORD"`
	DBName     string `mapstructure:"CTMS_DB_NAME"`

	HTTPAddr       string `mapstructure:"CTMS_HTTP_ADDR"`
	AllowedOrigins string `mapstructure:"CTMS_ALLOWED_ORIGINS"`

	JWTSecret       string        `mapstructure:"CTMS_JWT_SECRET"`
	JWTExpiredIn    time.Duration `mapstructure:"CTMS_JWT_EXPIRED_IN"`
	JWTRefExpiredIn time.Duration `mapstructure:"CTMS_JWT_REF_EXPIRED_IN"`

	AdminUser  string `mapstructure:"CTMS_ADMIN_USER"`
	AdminEmail string `mapstructure:"CTMS_ADMIN_EMAIL"`
	AdminPW    string `mapstructure:"CTMS_ADMIN_PW"`

	MQTTBroker string `mapstructure:"CTMS_MQTT_BROKER"`
	MQTTUser   string `mapstructure:"CTMS_MQTT_USER"`
	MQTTPW     string `mapstructure:"CTMS_MQTT_PW"`

	OpenAIKey   string `mapstructure:"CTMS_OPENAI_API_KEY"`
	OpenAIModel string `mapstructure:"CTMS_OPENAI_MODEL"`
}

/* LOADED ONCE AT STARTUP; HANDED TO COMPONENT CONSTRUCTORS, NOT READ AMBIENTLY */
var Conf Config

func LoadConfig(path string) (config Config, err error) {

	viper.AddConfigPath(path)
	viper.SetConfigType("env")
	viper.SetConfigName(".env")

	viper.SetDefault("CTMS_DB_HOST", "127.0.0.1")
	viper.SetDefault("CTMS_DB_PORT", "5432")
	viper.SetDefault("CTMS_DB_NAME", "ctms")
	viper.SetDefault("CTMS_HTTP_ADDR", "127.0.0.1:8007")
	viper.SetDefault("CTMS_ALLOWED_ORIGINS", "http://localhost:5173, http://localhost:4173")
	viper.SetDefault("CTMS_JWT_EXPIRED_IN", "60m")
	viper.SetDefault("CTMS_JWT_REF_EXPIRED_IN", "720h")
	viper.SetDefault("CTMS_OPENAI_MODEL", "gpt-4o-mini")

	viper.AutomaticEnv()

	/* A MISSING .env IS FINE ON DEPLOYED HOSTS; ENVIRONMENT WINS EITHER WAY */
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	Conf = config
	return
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func (c Config) AdminConnStr() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/postgres",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort,
	)
}
