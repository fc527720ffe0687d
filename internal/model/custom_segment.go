package model

import "time"

type CustomSegment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string    `gorm:"column:name;size:100;uniqueIndex:idx_custom_segments_name"`
	Description *string   `gorm:"column:description;type:text"`
	Pattern     *string   `gorm:"column:pattern;size:255"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (CustomSegment) TableName() string {
	return "custom_segments"
}

// HasPattern reports whether the segment carries a non-empty pattern. Segments
// without one never match any number.
func (c *CustomSegment) HasPattern() bool {
	return c.Pattern != nil && *c.Pattern != ""
}

type PhoneNumberCustomSegment struct {
	PhoneNumberID   int64     `gorm:"primaryKey;column:phone_number_id;autoIncrement:false"`
	CustomSegmentID int64     `gorm:"primaryKey;column:custom_segment_id;autoIncrement:false;index:idx_pncs_custom_segment"`
	CreatedAt       time.Time `gorm:"column:created_at"`

	PhoneNumber   PhoneNumber   `gorm:"foreignKey:PhoneNumberID;constraint:OnDelete:CASCADE"`
	CustomSegment CustomSegment `gorm:"foreignKey:CustomSegmentID;constraint:OnDelete:CASCADE"`
}

func (PhoneNumberCustomSegment) TableName() string {
	return "phone_number_custom_segment"
}
