package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("ZHEYE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// Default 返回仅包含默认值的配置，测试中使用
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 100)
	v.SetDefault("database.max_lifetime", 60)

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("mongo.url", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo.database", "zheye")

	v.SetDefault("minio.bucket", "zheye")

	v.SetDefault("elastic.question_index", "zheye-questions")

	v.SetDefault("logstash.index", "logstash-zheye")

	v.SetDefault("jwt.secret", "zheye")
	v.SetDefault("jwt.expire", 24)
	v.SetDefault("jwt.issuer", "Zheye")

	v.SetDefault("pagination.followers_per_page", 20)
	v.SetDefault("pagination.inbox_per_page", 20)

	v.SetDefault("recommend.size", 20)
	v.SetDefault("recommend.window_days", 30)

	v.SetDefault("cron.question_view", "0 */1 * * * *")
	v.SetDefault("cron.recommend", "0 */10 * * * *")

	v.SetDefault("kafka.consumer.session_timeout", 10)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 5)
	v.SetDefault("kafka_activity.topic", "zheye-activity")
	v.SetDefault("kafka_activity.group_id", "zheye-activity-fanout")
	v.SetDefault("kafka_user_follows.topic", "canal-zheye-user-follows")
	v.SetDefault("kafka_user_follows.group_id", "zheye-user-follows-cache")
	v.SetDefault("kafka_questions.topic", "canal-zheye-questions")
	v.SetDefault("kafka_questions.group_id", "zheye-questions-index")
}
