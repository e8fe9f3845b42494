package main

import (
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var (
	// 配置信息
	configPath = flag.String("config", "config.yml", "config file path")
	mongoURI   = flag.String("mongo_uri", "", "mongo db uri, required only for {db}.{col} data sources")
	listenAddr = flag.String("listen", "localhost:52201", "HTTP listening address for serve mode")
	logLevel   = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")
	serve      = flag.Bool("serve", false, "keep serving metrics and flow updates after evaluation")

	// 性能测试
	benchmark = flag.Bool("benchmark", false, "benchmark mode")
	pprofAddr = flag.String("pprof", "localhost:52202", "pprof listening address (empty means disable)")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

func main() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	flag.Parse()
	if level, ok := LOG_LEVELS[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("invalid log level: %s", *logLevel)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	if *pprofAddr != "" {
		// 启动pprof
		startHTTPDebugger(*pprofAddr)
	}

	// 批处理评估
	ev, err := evaluate(*mongoURI, cfg)
	if err != nil {
		logrus.Fatalf("evaluation failed: %v", err)
	}

	if *benchmark {
		// 性能测试
		runBenchmark(ev)
		return
	}
	if !*serve {
		log.Info("evaluation done")
		return
	}

	// 启动指标查询服务
	server := NewMetricServer(ev)
	// 使用HTTP/2 w.o. TLS
	s := &http.Server{
		Addr:    *listenAddr,
		Handler: h2c.NewHandler(server.Handler(), &http2.Server{}),
	}

	// 优雅退出
	// 创建监听退出chan
	signalCh := make(chan os.Signal, 1)
	//监听指定信号 ctrl+c kill
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signalCh
		log.Info("stopping...")
		go func() {
			<-signalCh
			os.Exit(1) // 强制结束
		}()
		s.Close()
		os.Exit(0)
	}()

	log.Infof("server listening at %v", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to serve: %v", err)
	}
	time.Sleep(1 * time.Second) // 延迟等待"优雅退出"
	log.Info("accessibility closes")
}
