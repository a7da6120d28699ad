package handler

import (
	"log"
	"net/http"
	"sync"

	config "clock-client/configs"
	"clock-client/pkg/handlers"
	"clock-client/pkg/logger"
	"clock-client/pkg/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	app  *gin.Engine
	once sync.Once
)

// setupApp はGinアプリケーションを初期化します。
// サーバーレス環境では、リクエストごとに初期化が走らないようsync.Onceで一度だけ実行します。
func setupApp() *gin.Engine {
	once.Do(func() {
		// 環境変数はプラットフォーム側の設定から読み込まれるため、ここではgodotenvを呼び出しません。
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Printf("FATAL: failed to load config: %v", err)
			cfg = &config.Config{}
		}

		zapLog, err := logger.New(cfg.LogLevel, "json")
		if err != nil {
			zapLog = zap.NewNop()
		}

		gin.SetMode(gin.ReleaseMode)

		clockService := services.NewClockServiceFromConfig(cfg, zapLog)

		app = handlers.NewRouter(cfg, clockService, services.NewMonitoringService(zapLog))
	})
	return app
}

// Handler はサーバーレス関数のエントリーポイントです。
func Handler(w http.ResponseWriter, r *http.Request) {
	setupApp().ServeHTTP(w, r)
}
