package main

import (
	"context"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"
	"github.com/redis/go-redis/v9"

	interaction "mytube.com/cmd/api/handlers/interaction"
	relation "mytube.com/cmd/api/handlers/relation"
	user "mytube.com/cmd/api/handlers/user"
	"mytube.com/cmd/api/pack"
	"mytube.com/cmd/api/router"
	"mytube.com/cmd/api/router/authfunc"
	userservice "mytube.com/cmd/user/service"
	videoservice "mytube.com/cmd/video/service"
	conf "mytube.com/config"
	"mytube.com/config/pprof"
	"mytube.com/dal"
	"mytube.com/pkg/errno"
	"mytube.com/pkg/mq"
	"mytube.com/pkg/oss"
	"mytube.com/pkg/security"
	"mytube.com/pkg/tracer"
)

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		hlog.SetLevel(hlog.LevelDebug)
	case "warn":
		hlog.SetLevel(hlog.LevelWarn)
	case "error":
		hlog.SetLevel(hlog.LevelError)
	default:
		hlog.SetLevel(hlog.LevelInfo)
	}
}

// Init connects every backing service. MySQL and MinIO are required; the
// broker and redis only degrade features when they are down.
func Init() (limiter *security.RateLimiter, cleanup func()) {
	info := conf.ConfigInfo
	var producer mq.MessageProducer
	closer, err := tracer.InitJaeger(info.Jaeger.ServiceName, info.Jaeger.Addr)
	if err != nil {
		hlog.Warnf("jaeger init failed, tracing disabled: %v", err)
	}
	dal.Init()

	storage, err := oss.InitMinio()
	if err != nil {
		hlog.Fatalf("minio init failed: %v", err)
	}
	videoservice.Init(storage)
	userservice.Init(storage)

	p, err := mq.NewProducer(mq.URL(info.RabbitMq.Username, info.RabbitMq.Password, info.RabbitMq.Addr), info.RabbitMq.Exchange)
	if err != nil {
		hlog.Warnf("rabbitmq unavailable, interaction events disabled: %v", err)
	} else {
		producer = p
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     info.Redis.Addr,
		Password: info.Redis.Password,
		DB:       info.Redis.DB,
	})
	limiter = security.NewRateLimiter(rdb, info.RateLimit.Window, info.RateLimit.MaxRequests)

	jm := security.NewJWTManager(info.Jwt.AccessSecret, info.Jwt.RefreshSecret, info.Jwt.AccessTTL, info.Jwt.RefreshTTL)
	authfunc.Init(jm)
	user.Init(jm, info.Jwt.AccessTTL, info.Jwt.RefreshTTL)
	interaction.Init(producer)
	relation.Init(producer)
	if info.Server.UploadDir != "" {
		pack.UploadDir = info.Server.UploadDir
	}

	cleanup = func() {
		if p != nil {
			_ = p.Close()
		}
		_ = rdb.Close()
		if closer != nil {
			_ = closer.Close()
		}
	}
	return limiter, cleanup
}

func main() {
	conf.Init()
	setLogLevel(conf.ConfigInfo.Log.Level)
	limiter, cleanup := Init()
	defer cleanup()
	pprof.Load(conf.ConfigInfo.Server.PprofAddr)

	opts := []config.Option{
		server.WithHostPorts(conf.ConfigInfo.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(conf.ConfigInfo.Server.MaxBodyBytes),
		server.WithExitWaitTime(5 * time.Second),
	}
	tlsCfg, err := security.ServerTLSConfig(conf.ConfigInfo.Server.TLSCertFile, conf.ConfigInfo.Server.TLSKeyFile)
	if err != nil {
		hlog.Fatalf("tls config: %v", err)
	}
	if tlsCfg != nil {
		opts = append(opts, server.WithTLS(tlsCfg))
	}
	h := server.New(opts...)

	// 配置 CORS
	h.Use(cors.New(cors.Config{
		AllowOrigins:     conf.ConfigInfo.Server.CorsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 错误处理
	h.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			pack.SendError(ctx, c, errno.ServiceErr)
		})))
	h.Use(tracer.ServerMiddleware())

	router.Register(h, limiter)
	h.Spin()
}
