package media

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Asset is the metadata row behind one uploaded object. The row only exists
// when the object does; upload failures never leave a row behind and a
// failed row insert rolls the object back.
type Asset struct {
	bun.BaseModel `bun:"table:media_assets,alias:ma"`

	ID           uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ObjectKey    string    `bun:"object_key,notnull,unique" json:"object_key"`
	URL          string    `bun:"url,notnull" json:"url"`
	OriginalName string    `bun:"original_name,notnull" json:"original_name"`
	ContentType  string    `bun:"content_type,notnull" json:"content_type"`
	Size         int64     `bun:"size,notnull,default:0" json:"size"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
