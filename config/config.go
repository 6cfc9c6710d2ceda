package config

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

var (
	envOnce   sync.Once
	appOnce   sync.Once
	appConfig *AppConfig
)

// AppConfig 服务配置
type AppConfig struct {
	ServerAddr    string
	LogLevel      string
	LogEncoding   string
	LogOutputs    []string
	MaxUploadSize int64
	ClassesFile   string
	StagingDir    string
	Classifier    ClassifierConfig
	OCR           OCRConfig
}

type ClassifierConfig struct {
	// MinConfidence is the 0-100 score a class must reach to win.
	MinConfidence float64
}

type OCRConfig struct {
	Engine           string // "tesseract" | "textract"
	Language         string
	DPI              int
	MinPDFTextLength int
	Workers          int
	PdftoppmPath     string
}

const (
	DefaultMinConfidence    = 70.0
	DefaultMinPDFTextLength = 10
	DefaultOCRDPI           = 300
	DefaultOCRWorkers       = 4
)

// GetConfig loads the process configuration once.
func GetConfig() *AppConfig {
	appOnce.Do(func() {
		loadDotEnv()
		appConfig = Load()
	})
	return appConfig
}

// Load reads the configuration from the environment without caching it.
func Load() *AppConfig {
	return &AppConfig{
		ServerAddr:    envString("SERVER_ADDR", ":8080"),
		LogLevel:      envString("LOG_LEVEL", "info"),
		LogEncoding:   envString("LOG_ENCODING", "json"),
		LogOutputs:    envList("LOG_OUTPUT", []string{"stdout"}),
		MaxUploadSize: envInt64("MAX_UPLOAD_SIZE", 20<<20),
		ClassesFile:   envString("CLASSES_FILE", ""),
		StagingDir:    envString("STAGING_DIR", ""),
		Classifier: ClassifierConfig{
			MinConfidence: envFloat("MIN_CONFIDENCE", DefaultMinConfidence),
		},
		OCR: OCRConfig{
			Engine:           strings.ToLower(envString("OCR_ENGINE", "tesseract")),
			Language:         envString("OCR_LANGUAGE", "eng"),
			DPI:              envInt("OCR_DPI", DefaultOCRDPI),
			MinPDFTextLength: envInt("PDF_MIN_TEXT_LENGTH", DefaultMinPDFTextLength),
			Workers:          envInt("OCR_WORKERS", DefaultOCRWorkers),
			PdftoppmPath:     envString("PDFTOPPM_PATH", "pdftoppm"),
		},
	}
}

func loadDotEnv() {
	envOnce.Do(func() {
		// 获取当前文件的目录
		_, filename, _, _ := runtime.Caller(0)
		rootDir := filepath.Dir(filepath.Dir(filename))
		envPath := filepath.Join(rootDir, ".env")

		if err := godotenv.Load(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, falling back to environment variables", envPath)
		}
	})
}

func envString(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envList(key string, fallback []string) []string {
	v := envString(key, "")
	if v == "" {
		return fallback
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(envString(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	n, err := strconv.ParseInt(envString(key, ""), 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(envString(key, ""), 64)
	if err != nil || f < 0 || f > 100 {
		return fallback
	}
	return f
}
