package db_models

import "gorm.io/datatypes"

// CurrentSchemaVersion is the activity shape written by this service:
// dual ratings plus moment notes.
const CurrentSchemaVersion = 3

type Activity struct {
	BaseModel
	Title         string         `gorm:"type:text;not null"`
	Description   string         `gorm:"type:text"`
	Address       string         `gorm:"type:text"`
	Labels        datatypes.JSON `gorm:"type:text;not null"`
	Picture       string         `gorm:"type:text"`
	AyoubRating   int            `gorm:"not null;check:ayoub_rating BETWEEN 1 AND 10"`
	MedinaRating  int            `gorm:"not null;check:medina_rating BETWEEN 1 AND 10"`
	Date          string         `gorm:"type:varchar(10);not null;index"`
	Moment        string         `gorm:"type:text"`
	SchemaVersion int            `gorm:"not null"`
}

func (Activity) TableName() string {
	return "activities"
}
