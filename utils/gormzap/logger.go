// Package gormzap gormのログをzapに流すアダプタ
package gormzap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// L gorm用のロガー
type L struct {
	zap *zap.Logger
}

// New gormzapロガーを生成します
func New(zap *zap.Logger) *L {
	return &L{zap: zap}
}

// LogMode implements gorm's logger.Interface.
func (l *L) LogMode(_ gormlogger.LogLevel) gormlogger.Interface {
	return l
}

// Info implements gorm's logger.Interface.
func (l *L) Info(_ context.Context, format string, args ...interface{}) {
	l.zap.Info(fmt.Sprintf(format, args...))
}

// Warn implements gorm's logger.Interface.
func (l *L) Warn(_ context.Context, format string, args ...interface{}) {
	l.zap.Warn(fmt.Sprintf(format, args...))
}

// Error implements gorm's logger.Interface.
func (l *L) Error(_ context.Context, format string, args ...interface{}) {
	l.zap.Error(fmt.Sprintf(format, args...))
}

// Trace implements gorm's logger.Interface.
func (l *L) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.zap.Error("gorm trace",
			zap.Error(err),
			zap.String("sql", sql),
			zap.String("file", utils.FileWithLineNum()),
			zap.Float64("latency(ms)", float64(elapsed.Nanoseconds())/1e6),
			zap.Int64("rows", rows),
		)
	default:
		sql, rows := fc()
		l.zap.Debug("gorm trace",
			zap.String("sql", sql),
			zap.String("file", utils.FileWithLineNum()),
			zap.Float64("latency(ms)", float64(elapsed.Nanoseconds())/1e6),
			zap.Int64("rows", rows),
		)
	}
}

// ParamsFilter implements gorm's logger.ParamsFilter interface.
func (l *L) ParamsFilter(_ context.Context, sql string, params ...interface{}) (string, []interface{}) {
	return sql, params
}
