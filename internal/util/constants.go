package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	DatabaseMySQL    = "mysql"
	DatabasePostgres = "postgres"
)

const (
	ApplicationStoreRedis  = "redis"
	ApplicationStoreMemory = "memory"
)

const MimeCSV = "text/csv"

// TrackerPath is the participant-facing URL path for a token.
func TrackerPath(token string) string {
	return "/tracker/" + token
}
