package global

import (
	"meta_content/config"
	"meta_content/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Integrations string // Tên collection cho liên kết workspace Slack ↔ user nội bộ
	Drafts       string // Tên collection cho draft đang trong workflow
	Posts        string // Tên collection cho post đã được duyệt
	Schedules    string // Tên collection cho lịch đăng của post
	Cadences     string // Tên collection cho recurrence rule định kỳ
	WebhookLogs  string // Tên collection cho log webhook nhận được
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName    // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
