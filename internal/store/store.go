package store

import (
	"errors"

	"blog-server/internal/model"

	"github.com/google/uuid"
)

// ErrNotFound 查無資料
var ErrNotFound = errors.New("record not found")

// newID 產生不透明的唯一識別碼，測試可覆寫
var newID = uuid.NewString

type scanner interface {
	Scan(dest ...any) error
}

// attributesOrEmpty 讓 NOT NULL 的 jsonb 欄位永遠寫入物件
func attributesOrEmpty(a model.Attributes) model.Attributes {
	if a == nil {
		return model.Attributes{}
	}
	return a
}
