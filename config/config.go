package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:":8080"`      // Địa chỉ server
	JwtSecret             string `env:"JWT_SECRET,required"`             // Bí mật JWT cho các route quản trị
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"` // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`         // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`     // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"` // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"` // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"` // Bật/tắt rate limiting

	// Slack Webhook Configuration
	SlackSigningSecret string `env:"SLACK_SIGNING_SECRET,required"` // Shared secret để verify chữ ký webhook
	SlackAPIBaseURL    string `env:"SLACK_API_BASE_URL" envDefault:"https://slack.com/api"` // Base URL Slack API (đổi được khi test)
	SlackReplayWindow  int    `env:"SLACK_REPLAY_WINDOW" envDefault:"300"` // Cửa sổ chống replay cho timestamp (giây)

	// Generation Service Configuration (dịch vụ sinh nội dung - black box)
	GenerationServiceURL   string `env:"GENERATION_SERVICE_URL,required"` // URL dịch vụ sinh nội dung
	GenerationServiceKey   string `env:"GENERATION_SERVICE_KEY"`          // API key cho dịch vụ sinh nội dung
	GenerationTimeoutSecs  int    `env:"GENERATION_TIMEOUT_SECS" envDefault:"60"` // Timeout mỗi lần gọi generation (giây)

	// Cadence Sweep Configuration
	CadenceSweepIntervalSecs int `env:"CADENCE_SWEEP_INTERVAL_SECS" envDefault:"60"` // Khoảng thời gian giữa các lần quét cadence (giây)

	// SMTP Configuration (delivery method email cho cadence)
	SMTPHost     string `env:"SMTP_HOST"`                    // SMTP server host
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`   // SMTP server port
	SMTPUsername string `env:"SMTP_USERNAME"`                // SMTP username
	SMTPPassword string `env:"SMTP_PASSWORD"`                // SMTP password
	SMTPFrom     string `env:"SMTP_FROM"`                    // Địa chỉ gửi

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config/env bằng cách đi lên từ thư mục hiện tại
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
