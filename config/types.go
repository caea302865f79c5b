package config

import "time"

type config struct {
	Server    server    `yaml:"server" mapstructure:"server"`
	Mysql     mysql     `yaml:"mysql" mapstructure:"mysql"`
	Redis     redis     `yaml:"redis" mapstructure:"redis"`
	RabbitMq  rabbitmq  `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Minio     minio     `yaml:"minio" mapstructure:"minio"`
	Jwt       jwt       `yaml:"jwt" mapstructure:"jwt"`
	Jaeger    jaeger    `yaml:"jaeger" mapstructure:"jaeger"`
	RateLimit rateLimit `yaml:"ratelimit" mapstructure:"ratelimit"`
	Log       logConf   `yaml:"log" mapstructure:"log"`
}

type server struct {
	Addr         string   `yaml:"addr"`
	MaxBodyBytes int      `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	CorsOrigins  []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	UploadDir    string   `yaml:"upload_dir" mapstructure:"upload_dir"`
	PprofAddr    string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
	TLSCertFile  string   `yaml:"tls_cert_file" mapstructure:"tls_cert_file"`
	TLSKeyFile   string   `yaml:"tls_key_file" mapstructure:"tls_key_file"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Exchange string `yaml:"exchange"`
}

type minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Bucket    string `yaml:"bucket"`
	PublicURL string `yaml:"public_url" mapstructure:"public_url"`
}

type jwt struct {
	AccessSecret  string        `yaml:"access_secret" mapstructure:"access_secret"`
	AccessTTL     time.Duration `yaml:"access_ttl" mapstructure:"access_ttl"`
	RefreshSecret string        `yaml:"refresh_secret" mapstructure:"refresh_secret"`
	RefreshTTL    time.Duration `yaml:"refresh_ttl" mapstructure:"refresh_ttl"`
}

type jaeger struct {
	Addr        string `yaml:"addr"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}

type rateLimit struct {
	Window      time.Duration `yaml:"window"`
	MaxRequests int           `yaml:"max_requests" mapstructure:"max_requests"`
}

type logConf struct {
	Level string `yaml:"level"`
}
