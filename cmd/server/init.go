package main

import (
	"context"
	"meta_content/config"
	cadencemodels "meta_content/internal/api/cadence/models"
	contentmodels "meta_content/internal/api/content/models"
	draftmodels "meta_content/internal/api/draft/models"
	integrationmodels "meta_content/internal/api/integration/models"
	webhookmodels "meta_content/internal/api/webhook/models"
	"meta_content/internal/database"
	"meta_content/internal/global"

	"github.com/sirupsen/logrus"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Integrations = "integrations"
	global.MongoDB_ColNames.Drafts = "drafts"
	global.MongoDB_ColNames.Posts = "posts"
	global.MongoDB_ColNames.Schedules = "schedules"
	global.MongoDB_ColNames.Cadences = "cadences"
	global.MongoDB_ColNames.WebhookLogs = "webhook_logs"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khơi tạo các index cho các collection
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Integrations), integrationmodels.Integration{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Drafts), draftmodels.Draft{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Posts), contentmodels.Post{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Schedules), contentmodels.Schedule{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Cadences), cadencemodels.Cadence{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.WebhookLogs), webhookmodels.WebhookLog{})

	// Index compound (unique draft theo channel+thread, sweep cadence/schedule)
	// không biểu diễn được qua model tags nên tạo riêng
	if err := database.CreateContentIndexes(context.TODO(), db); err != nil {
		logrus.Fatalf("Failed to create content pipeline indexes: %v", err)
	}
	logrus.Info("Created indexes for all collections")
}
