package main

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app/server"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"

	"tuition-show/biz/adaptor"
	"tuition-show/biz/infrastructure/util/log"
	"tuition-show/provider"
)

func main() {
	cleanup := provider.Init()
	p := provider.Get()
	c := p.Config

	auth, err := adaptor.JWTAuth(c.Auth)
	if err != nil {
		panic(err)
	}

	otel.SetTextMapPropagator(b3.New())
	tracer, cfg := hertztracing.NewServerTracer()
	h := server.Default(
		server.WithHostPorts(c.ListenOn),
		tracer,
		server.WithTracer(prometheus.NewServerTracer(c.Metrics.Addr, c.Metrics.Path,
			prometheus.WithRegistry(p.Metrics.Registry),
		)),
	)
	h.Use(hertztracing.ServerMiddleware(cfg))
	customizedRegister(h, auth)

	// 邮件重投随服务退出停止
	relayCtx, cancel := context.WithCancel(context.Background())
	p.NotificationService.StartRelay(relayCtx)
	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		cancel()
		cleanup()
		log.Info("server shutdown, resources released")
	})

	log.Info("server listen on %s", c.ListenOn)
	h.Spin()
}
