package api

import (
	"context"

	"bidding/internal/app/config"
	"bidding/internal/app/dsn"
	"bidding/internal/app/handler"
	"bidding/internal/app/mail"
	"bidding/internal/app/middleware"
	"bidding/internal/app/redis"
	"bidding/internal/app/repository"
	"bidding/internal/app/storage"
	"bidding/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal("ошибка чтения конфигурации: ", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatal("ошибка инициализации репозитория: ", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		// без Redis сервер работает, но logout не отзывает токены
		logrus.Error("ошибка подключения к Redis: ", err)
	}

	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
		cfg.Minio.Timeout,
	)
	if err != nil {
		// без MinIO сервер работает, но загрузка картинок отвечает 500
		logrus.Error("ошибка подключения к MinIO: ", err)
	}

	mailer := mail.New(cfg.SMTP)

	apiHandler := handler.NewAPIHandler(repo, minioClient, redisClient, mailer, cfg)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	apiHandler.RegisterAPIRoutes(r, authMiddleware)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	app := pkg.NewApp(cfg, r)
	app.RunApp()

	logrus.Info("Server down")
}
