package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/stadtwache/stadtwache/utils/gormzap"
)

// Config 設定
type Config struct {
	// DevMode 開発モードかどうか (default: false)
	DevMode bool `mapstructure:"dev" yaml:"dev"`
	// Pprof pprofを有効にするかどうか (default: false)
	Pprof bool `mapstructure:"pprof" yaml:"pprof"`

	// Origin サーバーオリジン (default: http://localhost:8000)
	Origin string `mapstructure:"origin" yaml:"origin"`
	// Port サーバーポート番号 (default: 8000)
	Port int `mapstructure:"port" yaml:"port"`
	// ShutdownTimeout サーバーシャットダウンのタイムアウト秒数 (default: 10)
	ShutdownTimeout int `mapstructure:"shutdownTimeout" yaml:"shutdownTimeout"`

	// JWT アクセストークン設定
	JWT struct {
		// Secret 署名シークレット
		Secret string `mapstructure:"secret" yaml:"secret"`
		// LifetimeMinutes トークン有効期間(分) (default: 30)
		LifetimeMinutes int `mapstructure:"lifetimeMinutes" yaml:"lifetimeMinutes"`
	} `mapstructure:"jwt" yaml:"jwt"`

	// Presence プレゼンス設定
	Presence struct {
		// OfflineThresholdSeconds この秒数ハートビートがなければオフラインとみなす (default: 120)
		OfflineThresholdSeconds int `mapstructure:"offlineThresholdSeconds" yaml:"offlineThresholdSeconds"`
	} `mapstructure:"presence" yaml:"presence"`

	// MariaDB データベース接続設定
	MariaDB struct {
		// Host ホスト名 (default: 127.0.0.1)
		Host string `mapstructure:"host" yaml:"host"`
		// Port ポート番号 (default: 3306)
		Port int `mapstructure:"port" yaml:"port"`
		// Username ユーザー名 (default: root)
		Username string `mapstructure:"username" yaml:"username"`
		// Password パスワード (default: password)
		Password string `mapstructure:"password" yaml:"password"`
		// Database データベース名 (default: stadtwache)
		Database string `mapstructure:"database" yaml:"database"`
		// Connection コネクション設定
		Connection struct {
			// MaxOpen 最大オープン接続数. 0は無制限 (default: 0)
			MaxOpen int `mapstructure:"maxOpen" yaml:"maxOpen"`
			// MaxIdle 最大アイドル接続数 (default: 2)
			MaxIdle int `mapstructure:"maxIdle" yaml:"maxIdle"`
			// LifeTime 待機接続維持時間. 0は無制限 (default: 0)
			LifeTime int `mapstructure:"lifetime" yaml:"lifetime"`
		} `mapstructure:"connection" yaml:"connection"`
	} `mapstructure:"mariadb" yaml:"mariadb"`
}

// Configのデフォルト値設定
func init() {
	viper.SetDefault("dev", false)
	viper.SetDefault("pprof", false)
	viper.SetDefault("origin", "http://localhost:8000")
	viper.SetDefault("port", 8000)
	viper.SetDefault("shutdownTimeout", 10)
	viper.SetDefault("jwt.secret", "")
	viper.SetDefault("jwt.lifetimeMinutes", 30)
	viper.SetDefault("presence.offlineThresholdSeconds", 120)
	viper.SetDefault("mariadb.host", "127.0.0.1")
	viper.SetDefault("mariadb.port", 3306)
	viper.SetDefault("mariadb.username", "root")
	viper.SetDefault("mariadb.password", "password")
	viper.SetDefault("mariadb.database", "stadtwache")
	viper.SetDefault("mariadb.connection.maxOpen", 0)
	viper.SetDefault("mariadb.connection.maxIdle", 2)
	viper.SetDefault("mariadb.connection.lifetime", 0)
}

func (c Config) getDatabase(logger *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true",
		c.MariaDB.Username,
		c.MariaDB.Password,
		c.MariaDB.Host,
		c.MariaDB.Port,
		c.MariaDB.Database,
	)
	engine, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormzap.New(logger.Named("gorm")),
	})
	if err != nil {
		return nil, err
	}
	db, err := engine.DB()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(c.MariaDB.Connection.MaxOpen)
	db.SetMaxIdleConns(c.MariaDB.Connection.MaxIdle)
	db.SetConnMaxLifetime(time.Duration(c.MariaDB.Connection.LifeTime) * time.Second)
	return engine.Set("gorm:table_options", "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"), nil
}
