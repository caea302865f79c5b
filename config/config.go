package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

// EnvPrefix is the prefix of environment overrides, e.g. MYTUBE_MYSQL_ADDR.
const EnvPrefix = "MYTUBE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.max_body_bytes", 200<<20)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.upload_dir", filepath.Join(os.TempDir(), "mytube"))
	v.SetDefault("mysql.charset", "utf8mb4")
	v.SetDefault("minio.bucket", "mytube")
	v.SetDefault("rabbitmq.exchange", "mytube.interactions")
	v.SetDefault("jwt.access_ttl", 24*time.Hour)
	v.SetDefault("jwt.refresh_ttl", 10*24*time.Hour)
	v.SetDefault("jaeger.service_name", "mytube-api")
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("ratelimit.max_requests", 300)
	v.SetDefault("log.level", "info")
}

// New returns a viper instance that reads config.yml from the usual
// locations and lets MYTUBE_* variables override any key.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("config.yml")
	for _, path := range []string{"../../config", "./config", "../config", "."} {
		v.AddConfigPath(path)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load copies the settings held by v into a config value.
func Load(v *viper.Viper) config {
	var c config

	c.Server.Addr = v.GetString("server.addr")
	c.Server.MaxBodyBytes = v.GetInt("server.max_body_bytes")
	c.Server.CorsOrigins = v.GetStringSlice("server.cors_origins")
	c.Server.UploadDir = v.GetString("server.upload_dir")
	c.Server.PprofAddr = v.GetString("server.pprof_addr")
	c.Server.TLSCertFile = v.GetString("server.tls_cert_file")
	c.Server.TLSKeyFile = v.GetString("server.tls_key_file")

	c.Mysql.Addr = v.GetString("mysql.addr")
	c.Mysql.Database = v.GetString("mysql.database")
	c.Mysql.Username = v.GetString("mysql.username")
	c.Mysql.Password = v.GetString("mysql.password")
	c.Mysql.Charset = v.GetString("mysql.charset")

	c.Redis.Addr = v.GetString("redis.addr")
	c.Redis.Password = v.GetString("redis.password")
	c.Redis.DB = v.GetInt("redis.db")

	c.RabbitMq.Addr = v.GetString("rabbitmq.addr")
	c.RabbitMq.Username = v.GetString("rabbitmq.username")
	c.RabbitMq.Password = v.GetString("rabbitmq.password")
	c.RabbitMq.Exchange = v.GetString("rabbitmq.exchange")

	c.Minio.Endpoint = v.GetString("minio.endpoint")
	c.Minio.AccessKey = v.GetString("minio.access_key")
	c.Minio.SecretKey = v.GetString("minio.secret_key")
	c.Minio.UseSSL = v.GetBool("minio.use_ssl")
	c.Minio.Bucket = v.GetString("minio.bucket")
	c.Minio.PublicURL = v.GetString("minio.public_url")

	c.Jwt.AccessSecret = v.GetString("jwt.access_secret")
	c.Jwt.AccessTTL = v.GetDuration("jwt.access_ttl")
	c.Jwt.RefreshSecret = v.GetString("jwt.refresh_secret")
	c.Jwt.RefreshTTL = v.GetDuration("jwt.refresh_ttl")

	c.Jaeger.Addr = v.GetString("jaeger.addr")
	c.Jaeger.ServiceName = v.GetString("jaeger.service_name")

	c.RateLimit.Window = v.GetDuration("ratelimit.window")
	c.RateLimit.MaxRequests = v.GetInt("ratelimit.max_requests")

	c.Log.Level = v.GetString("log.level")
	return c
}

// Init fills ConfigInfo. A missing config file is not fatal: defaults and
// environment overrides still apply.
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	v := New()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, using defaults and %s_* env: %v", EnvPrefix, err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
	} else {
		logrus.Infof("Successfully read config file: %s", v.ConfigFileUsed())
	}

	ConfigInfo = Load(v)

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	if ConfigInfo.Jwt.AccessSecret == "" || ConfigInfo.Jwt.RefreshSecret == "" {
		logrus.Warn("jwt secrets are not configured!")
	}
}
