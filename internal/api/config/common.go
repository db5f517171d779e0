package config

// Config 配置主体
type Config struct {
	Server           ServerConfig     `mapstructure:"server"`
	DB               DBConfig         `mapstructure:"database"`
	Redis            RedisConfig      `mapstructure:"redis"`
	Mongo            MongoConfig      `mapstructure:"mongo"`
	MinIO            MinIOConfig      `mapstructure:"minio"`
	Elastic          ElasticConfig    `mapstructure:"elastic"`
	Logstash         LogstashConfig   `mapstructure:"logstash"`
	JWT              JWTConfig        `mapstructure:"jwt"`
	Pagination       PaginationConfig `mapstructure:"pagination"`
	Recommend        RecommendConfig  `mapstructure:"recommend"`
	Cron             CronConfig       `mapstructure:"cron"`
	Kafka            KafkaConfig      `mapstructure:"kafka"`
	KafkaActivity    KafkaTopicConfig `mapstructure:"kafka_activity"`
	KafkaUserFollows KafkaTopicConfig `mapstructure:"kafka_user_follows"`
	KafkaQuestions   KafkaTopicConfig `mapstructure:"kafka_questions"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	UseSSL         bool   `mapstructure:"use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Enable        bool   `mapstructure:"enable"`
	Address       string `mapstructure:"address"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	QuestionIndex string `mapstructure:"question_index"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	// 过期时间，单位小时
	Expire int    `mapstructure:"expire"`
	Issuer string `mapstructure:"issuer"`
}

// PaginationConfig 对应原站点的 FLASKY_FOLLOWERS_PER_PAGE
type PaginationConfig struct {
	FollowersPerPage int `mapstructure:"followers_per_page"`
	InboxPerPage     int `mapstructure:"inbox_per_page"`
}

type RecommendConfig struct {
	Size       int `mapstructure:"size"`
	WindowDays int `mapstructure:"window_days"`
}

type CronConfig struct {
	QuestionView string `mapstructure:"question_view"`
	Recommend    string `mapstructure:"recommend"`
}

type KafkaConfig struct {
	Enable   bool           `mapstructure:"enable"`
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaTopicConfig struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
