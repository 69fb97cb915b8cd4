package config

import (
	"time"

	"github.com/prithidevghosh/speerNote/utils"
)

type DatabaseConfig struct {
	URI             string        `validate:"required"`
	DatabaseName    string        `validate:"required"`
	MaxPoolSize     uint64        `validate:"gtefield=MinPoolSize"`
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration `validate:"gt=0"`
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGOURI", ""),
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "speernote"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		ConnectTimeout:  utils.GetEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
	}
}

// MongoOptions converts the config into the client constructor's options.
func (d DatabaseConfig) MongoOptions() utils.MongoOptions {
	return utils.MongoOptions{
		URI:             d.URI,
		MaxPoolSize:     d.MaxPoolSize,
		MinPoolSize:     d.MinPoolSize,
		MaxConnIdleTime: d.MaxConnIdleTime,
		ConnectTimeout:  d.ConnectTimeout,
	}
}
