package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server          ServerConfig          `mapstructure:"server"`
	Database        DatabaseConfig        `mapstructure:"database"`
	Redis           RedisConfig           `mapstructure:"redis"`
	Kafka           KafkaConfig           `mapstructure:"kafka"`
	JWT             JWTConfig             `mapstructure:"jwt"`
	Log             LogConfig             `mapstructure:"log"`
	Minio           MinioConfig           `mapstructure:"minio"`
	Pipeline        PipelineConfig        `mapstructure:"pipeline"`
	Spooler         SpoolerConfig         `mapstructure:"spooler"`
	Trigger         TriggerConfig         `mapstructure:"trigger"`
	ServiceRegistry ServiceRegistryConfig `mapstructure:"service_registry"`
	Profiling       ProfilingConfig       `mapstructure:"profiling"`
	Public          PublicConfig          `mapstructure:"public"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	Charset         string        `mapstructure:"charset"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	EnableTLS    bool          `mapstructure:"enable_tls"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Enabled          bool              `mapstructure:"enabled"`
	BootstrapServers []string          `mapstructure:"bootstrap_servers"`
	ClientID         string            `mapstructure:"client_id"`
	Topics           KafkaTopicsConfig `mapstructure:"topics"`
}

type KafkaTopicsConfig struct {
	Notifications string `mapstructure:"notifications"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Issuer     string        `mapstructure:"issuer"`
	ExpireTime time.Duration `mapstructure:"expire_time"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// MinioConfig MinIO配置（可选的成品镜像存储）
type MinioConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKey       string `mapstructure:"access_key"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// PipelineConfig 转码流水线配置
type PipelineConfig struct {
	FFmpegPath  string        `mapstructure:"ffmpeg_path"`
	FFprobePath string        `mapstructure:"ffprobe_path"`
	YtDlpPath   string        `mapstructure:"ytdlp_path"`
	OutputDir   string        `mapstructure:"output_dir"`
	VideoCodec  string        `mapstructure:"video_codec"`
	StillExt    string        `mapstructure:"still_ext"`
	ToolTimeout time.Duration `mapstructure:"tool_timeout"`
	// PreviewSegmentLength 预览片每段时长
	PreviewSegmentLength time.Duration `mapstructure:"preview_segment_length"`
	// PreviewSegmentCount 预览片取样段数
	PreviewSegmentCount int `mapstructure:"preview_segment_count"`
}

// SpoolerConfig 下载池配置
type SpoolerConfig struct {
	DownloadDir   string `mapstructure:"download_dir"`
	MaxConcurrent int    `mapstructure:"max_concurrent"`
	Limiter       string `mapstructure:"limiter"` // local | redis
}

// TriggerConfig 周期触发配置
type TriggerConfig struct {
	DownloadInterval  time.Duration `mapstructure:"download_interval"`
	TranscodeInterval time.Duration `mapstructure:"transcode_interval"`
}

// ServiceRegistryConfig registration configuration.
type ServiceRegistryConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoints       []string      `mapstructure:"endpoints"`
	ServiceName     string        `mapstructure:"service_name"`
	ServiceID       string        `mapstructure:"service_id"`
	RegisterHost    string        `mapstructure:"register_host"`
	TTL             time.Duration `mapstructure:"ttl"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// ProfilingConfig pyroscope接入配置
type ProfilingConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	ServerAddress string `mapstructure:"server_address"`
}

// PublicConfig 对外访问配置
type PublicConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// StripPrefix 从artifact本地路径剥除的前缀，生成播放相对地址
	StripPrefix string `mapstructure:"strip_prefix"`
}

// Load 加载配置
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("server.port", 8084)
	viper.SetDefault("kafka.client_id", "vidpro")
	viper.SetDefault("kafka.bootstrap_servers", []string{"localhost:29092"})
	viper.SetDefault("kafka.topics.notifications", "vidpro.notifications")
	viper.SetDefault("service_registry.service_name", "vidpro")

	// 设置环境变量前缀
	viper.SetEnvPrefix("GO_VIDPRO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.normalize()

	return &config, nil
}

// normalize 补全配置的默认值
func (c *Config) normalize() {
	// 兼容不同的密钥字段
	if c.Minio.AccessKeyID == "" {
		c.Minio.AccessKeyID = c.Minio.AccessKey
	}
	if c.Minio.SecretAccessKey == "" {
		c.Minio.SecretAccessKey = c.Minio.SecretKey
	}

	if c.Pipeline.FFmpegPath == "" {
		c.Pipeline.FFmpegPath = "ffmpeg"
	}
	if c.Pipeline.FFprobePath == "" {
		c.Pipeline.FFprobePath = "ffprobe"
	}
	if c.Pipeline.YtDlpPath == "" {
		c.Pipeline.YtDlpPath = "yt-dlp"
	}
	if c.Pipeline.OutputDir == "" {
		c.Pipeline.OutputDir = "public/videos"
	}
	if c.Pipeline.VideoCodec == "" {
		c.Pipeline.VideoCodec = "libx264"
	}
	if c.Pipeline.StillExt == "" {
		c.Pipeline.StillExt = "jpg"
	}
	if c.Pipeline.ToolTimeout == 0 {
		c.Pipeline.ToolTimeout = time.Hour
	}
	if c.Pipeline.PreviewSegmentLength <= 0 {
		c.Pipeline.PreviewSegmentLength = 2 * time.Second
	}
	if c.Pipeline.PreviewSegmentCount < 1 {
		c.Pipeline.PreviewSegmentCount = 5
	}

	if c.Spooler.DownloadDir == "" {
		c.Spooler.DownloadDir = "download"
	}
	if c.Spooler.MaxConcurrent <= 0 {
		c.Spooler.MaxConcurrent = 3
	}
	if c.Spooler.Limiter == "" {
		c.Spooler.Limiter = "local"
	}

	if c.Trigger.DownloadInterval <= 0 {
		c.Trigger.DownloadInterval = 20 * time.Second
	}
	if c.Trigger.TranscodeInterval <= 0 {
		c.Trigger.TranscodeInterval = 30 * time.Second
	}

	if c.ServiceRegistry.TTL == 0 {
		c.ServiceRegistry.TTL = 30 * time.Second
	}
	if c.ServiceRegistry.RefreshInterval == 0 {
		c.ServiceRegistry.RefreshInterval = 10 * time.Second
	}
	if len(c.Kafka.BootstrapServers) == 0 {
		c.Kafka.BootstrapServers = []string{"localhost:29092"}
	}
	if c.Kafka.ClientID == "" {
		c.Kafka.ClientID = "vidpro"
	}
	if c.Kafka.Topics.Notifications == "" {
		c.Kafka.Topics.Notifications = "vidpro.notifications"
	}
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, charset)
}

// GetRedisAddr 获取Redis地址
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// SetGlobalConfig 设置全局配置（启动阶段调用一次）
func SetGlobalConfig(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig 获取全局配置
func GetGlobalConfig() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}
