package model

type SegmentType string

const (
	SegmentTypeCountryCode      SegmentType = "country_code"
	SegmentTypeOperatorCode     SegmentType = "operator_code"
	SegmentTypeSubscriberNumber SegmentType = "subscriber_number"
	SegmentTypeOperatorName     SegmentType = "operator_name"
)

// Segment is one technical piece of a phone number produced by the segmentation chain.
type Segment struct {
	ID            int64       `gorm:"primaryKey;autoIncrement;column:id"`
	PhoneNumberID int64       `gorm:"column:phone_number_id;index:idx_technical_segments_phone_type"`
	SegmentType   SegmentType `gorm:"column:segment_type;size:32;index:idx_technical_segments_phone_type;index:idx_technical_segments_type"`
	Value         string      `gorm:"column:value;size:100"`
}

func (Segment) TableName() string {
	return "technical_segments"
}
