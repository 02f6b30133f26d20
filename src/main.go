package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"taskman-app/src/config"
	"taskman-app/src/datamode"
	"taskman-app/src/handlers"
	"taskman-app/src/logger"
	"taskman-app/src/repository"
	"taskman-app/src/routes"
	"taskman-app/src/service"
	"taskman-app/src/storage"
	"taskman-app/src/store/clouddb"
	"taskman-app/src/store/localdb"
	"taskman-app/src/validator"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 設定を読み込み
	cfg := config.LoadConfig()

	// ロガーを初期化
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.Directory); err != nil {
		panic(fmt.Sprintf("ロガーの初期化に失敗: %v", err))
	}
	defer logger.CloseLogger()

	logger.Log.Info("アプリケーションを開始しています")

	// ローカルストアを開く
	dbPath := cfg.LocalDB.Path
	if dbPath == "" {
		dbPath = localdb.DefaultDBPath()
	}
	localStore, err := localdb.Open(dbPath, logger.Log)
	if err != nil {
		logger.Log.WithError(err).Fatal("ローカルストアのオープンに失敗")
	}
	defer localStore.Close()

	// クラウドストアを初期化（設定されている場合のみ）
	var cloudStore *clouddb.DB
	if cfg.CloudEnabled() {
		port, err := strconv.Atoi(cfg.CloudDB.Port)
		if err != nil {
			logger.Log.WithError(err).Fatal("クラウドDBポートが不正です")
		}
		cloudStore, err = clouddb.NewDB(&clouddb.Config{
			Host:     cfg.CloudDB.Host,
			Port:     port,
			User:     cfg.CloudDB.User,
			Password: cfg.CloudDB.Password,
			DBName:   cfg.CloudDB.DBName,
			SSLMode:  cfg.CloudDB.SSLMode,
		}, logger.Log)
		if err != nil {
			logger.Log.WithError(err).Fatal("クラウドストアへの接続に失敗")
		}
		defer cloudStore.Close()
	} else {
		logger.Log.Info("クラウドストアは未設定です。ローカルモードのみで動作します")
	}

	// S3アップローダーを初期化（設定が有効な場合）
	var objects *storage.ObjectStorage
	if cfg.CloudEnabled() || cfg.Log.UploadEnabled {
		s3Config := &storage.S3Config{
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			UseSSL:          cfg.S3.UseSSL,
		}

		objects, err = storage.NewObjectStorage(s3Config, logger.Log)
		if err != nil {
			logger.Log.WithError(err).Error("S3アップローダーの初期化に失敗")
			objects = nil
		} else if cfg.Log.UploadEnabled {
			// 定期的なログアップロードを開始
			objects.StartPeriodicUpload(cfg.Log.Directory, cfg.Log.UploadInterval, cfg.Log.UploadMaxAge)
		}
	}

	// データモードセレクターを初期化。起動時はローカルモード
	modes := datamode.NewSelector(localStore, cloudStore, logger.Log)

	// リポジトリを初期化
	taskRepo := repository.NewTaskRepository(modes, logger.Log)
	projectRepo := repository.NewProjectRepository(modes, logger.Log)
	clientRepo := repository.NewClientRepository(modes, logger.Log)
	paymentRepo := repository.NewPaymentRepository(modes, logger.Log)
	noteRepo := repository.NewNoteRepository(modes, logger.Log)
	fileRepo := repository.NewFileRepository(modes, objects, logger.Log)

	// 認証サービスを初期化（クラウドストアがある場合のみユーザー管理が有効）
	var userRepo repository.UserRepository
	if cloudStore != nil {
		userRepo = repository.NewUserRepository(cloudStore.DB)
	}
	jwtService := service.NewJWTService(cfg)
	authService := service.NewAuthService(userRepo, jwtService, cfg)

	// バリデーターを初期化
	cv := validator.NewCustomValidator()

	// ハンドラーを初期化
	h := &routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, modes),
		Tasks:    handlers.NewTaskHandler(taskRepo, projectRepo, cv, logger.Log),
		Projects: handlers.NewProjectHandler(projectRepo, clientRepo, cv, logger.Log),
		Clients:  handlers.NewClientHandler(clientRepo, cv, logger.Log),
		Payments: handlers.NewPaymentHandler(paymentRepo, cv, logger.Log),
		Notes:    handlers.NewNoteHandler(noteRepo, cv, logger.Log),
		Files:    handlers.NewFileHandler(fileRepo, cv, logger.Log),
		Stats:    handlers.NewStatsHandler(taskRepo, projectRepo, paymentRepo, logger.Log),
	}

	// Ginルーターを初期化
	r := gin.Default()

	// NoRouteハンドラー（404）
	r.NoRoute(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"uri":       c.Request.RequestURI,
			"client_ip": c.ClientIP(),
		}).Warn("404: ルートが見つかりません")
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	// NoMethodハンドラー（405）
	r.NoMethod(func(c *gin.Context) {
		logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"uri":       c.Request.RequestURI,
			"client_ip": c.ClientIP(),
		}).Warn("405: サポートされていないメソッド")
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// ヘルスチェック用のエンドポイント
	r.GET("/health", func(c *gin.Context) {
		status := "OK"
		if err := localStore.Health(c.Request.Context()); err != nil {
			status = "DEGRADED"
		}
		if cloudStore != nil {
			if err := cloudStore.Health(c.Request.Context()); err != nil {
				status = "DEGRADED"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    status,
			"mode":      string(modes.Mode()),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// アプリケーションルートを登録
	routes.SetupRoutes(r, h, jwtService, userRepo, modes)

	// グレースフルシャットダウンの設定
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Log.Info("シャットダウンシグナルを受信しました")

		// 最後のログアップロードを実行
		if objects != nil && cfg.Log.UploadEnabled {
			logger.Log.Info("最後のログアップロードを実行中...")
			if err := objects.UploadOldLogs(cfg.Log.Directory, 0); err != nil {
				logger.Log.WithError(err).Error("最後のログアップロードに失敗")
			}
		}

		localStore.Close()
		if cloudStore != nil {
			cloudStore.Close()
		}
		logger.CloseLogger()
		os.Exit(0)
	}()

	// サーバーを起動
	serverAddr := ":" + cfg.Server.Port
	logger.Log.WithField("port", cfg.Server.Port).Info("サーバーを開始します")

	if err := r.Run(serverAddr); err != nil {
		logger.Log.WithError(err).Fatal("サーバーの起動に失敗")
	}
}
