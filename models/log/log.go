package log

import (
	"time"
)

// Log is a persisted request/response pair. The same row shape is written to
// the Mongo "logs" collection and the optional Postgres request_logs table.
type Log struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" bson:"-" json:"id"`
	Method          string    `gorm:"type:varchar(10);not null" bson:"method" json:"method"`
	URL             string    `gorm:"type:text;not null" bson:"url" json:"url"`
	RequestBody     string    `gorm:"type:text" bson:"request_body" json:"request_body"`
	RequestHeaders  string    `gorm:"type:text" bson:"request_headers" json:"request_headers"`
	ResponseBody    string    `gorm:"type:text" bson:"response_body" json:"response_body"`
	ResponseHeaders string    `gorm:"type:text" bson:"response_headers" json:"response_headers"`
	StatusCode      int       `gorm:"type:int" bson:"status_code" json:"status_code"`
	CreatedAt       time.Time `gorm:"autoCreateTime" bson:"created_at" json:"created_at"`
}

func (Log) TableName() string {
	return "request_logs"
}
