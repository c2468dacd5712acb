package repository

// Repository データリポジトリ
type Repository interface {
	UserRepository
	IncidentRepository
	MessageRepository
	ReportRepository
	LocationRepository
	// Wipe 全テーブルの内容を削除します (管理者用リセット操作)
	Wipe() (int64, error)
}
