package notification

import (
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"

	"github.com/stadtwache/stadtwache/service/ws"
)

// Service 通知サービス
//
// ハブに発行されたドメインイベントを購読し、接続中のクライアントへ配信します。
// 配信はfire-and-forgetで、失敗が発行元に伝播することはありません。
type Service struct {
	hub    *hub.Hub
	logger *zap.Logger
	ws     *ws.Streamer
}

// StartService 通知サービスを作成して起動します
func StartService(h *hub.Hub, logger *zap.Logger, streamer *ws.Streamer) *Service {
	service := &Service{
		hub:    h,
		logger: logger.Named("notification"),
		ws:     streamer,
	}
	go func() {
		topics := make([]string, 0, len(handlerMap))
		for k := range handlerMap {
			topics = append(topics, k)
		}
		// ハンドラは逐次呼び出す。各セッションへの書き込み順序は発行順と一致する
		for msg := range h.Subscribe(200, topics...).Receiver {
			if handler, ok := handlerMap[msg.Topic()]; ok {
				handler(service, msg)
			}
		}
	}()
	return service
}
